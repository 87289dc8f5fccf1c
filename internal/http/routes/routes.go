package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/doc-watermark/internal/config"
	"github.com/phambaophuc/doc-watermark/internal/http/handlers"
	"github.com/phambaophuc/doc-watermark/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	watermarkHandler *handlers.WatermarkHandler
	logger           *zap.Logger
	config           *config.Config
}

func NewRouter(
	watermarkHandler *handlers.WatermarkHandler,
	logger *zap.Logger,
	config *config.Config,
) *Router {
	return &Router{
		watermarkHandler: watermarkHandler,
		logger:           logger,
		config:           config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(r.config.Server.AllowOrigins))

	// Batches carry several documents plus the form fields.
	bodyLimit := middleware.MaxBodySize(r.config.Storage.MaxFileSize * 10)
	multipartOnly := middleware.ValidateContentType("multipart/form-data")
	jsonOnly := middleware.ValidateContentType("application/json")

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.watermarkHandler.HealthCheck)
		v1.GET("/stats", r.watermarkHandler.GetStats)

		watermark := v1.Group("/watermark")
		{
			watermark.GET("/capabilities", r.watermarkHandler.Capabilities)
			watermark.POST("", bodyLimit, multipartOnly, r.watermarkHandler.Stamp)
			watermark.POST("/batch", bodyLimit, multipartOnly, r.watermarkHandler.BatchStamp)
			watermark.POST("/jobs", jsonOnly, r.watermarkHandler.SubmitJob)
			watermark.GET("/jobs/:id", r.watermarkHandler.GetJob)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Document watermarking is running",
		})
	})

	return router
}
