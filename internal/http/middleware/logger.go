package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const requestIDHeader = "X-Request-ID"

// Logger logs one line per request and tags the response with a request ID.
// Client errors log at warn and server errors at error.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx.Header(requestIDHeader, requestID)

		ctx.Next()

		status := ctx.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
			zap.Int64("request_size", ctx.Request.ContentLength),
			zap.Int("response_size", ctx.Writer.Size()),
			zap.String("user_agent", ctx.Request.UserAgent()),
		}
		if errs := ctx.Errors.String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		logger.Log(level, "HTTP Request", fields...)
	}
}
