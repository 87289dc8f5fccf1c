package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/doc-watermark/internal/models"
)

// ValidateContentType rejects requests with a body whose media type is not
// one of allowed.
func ValidateContentType(allowed ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.ContentLength == 0 {
			ctx.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))
		if err == nil {
			for _, a := range allowed {
				if mediaType == a {
					ctx.Next()
					return
				}
			}
		}

		ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, models.APIResponse{
			Success: false,
			Error:   "Unsupported content type",
		})
	}
}
