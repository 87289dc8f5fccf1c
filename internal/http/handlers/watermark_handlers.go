package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/config"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/services/processor"
	"github.com/phambaophuc/doc-watermark/internal/services/storage"
	"go.uber.org/zap"
)

const (
	documentParamKey  = "document"
	documentsParamKey = "documents"
	imageParamKey     = "image"
	uploadParamKey    = "upload"
)

// DocumentStore is what the handlers need from object storage and the job
// table.
type DocumentStore interface {
	SaveFile(ctx context.Context, data []byte, filename, contentType string) (string, error)
	UploadMultiple(ctx context.Context, files []models.UploadFile) ([]string, error)
	GetJob(ctx context.Context, id string) (*models.ProcessingJob, error)
	GetCacheStats(ctx context.Context) (map[string]interface{}, error)
	HealthCheck(ctx context.Context) map[string]string
}

type JobQueue interface {
	PublishJob(ctx context.Context, job *models.ProcessingJob) error
	GetQueueStats() (map[string]interface{}, error)
	HealthCheck() string
}

type WatermarkHandler struct {
	processor *processor.DocumentProcessor
	storage   DocumentStore
	queue     JobQueue
	logger    *zap.Logger
	config    *config.Config
}

// NewWatermarkHandler wires the handlers. storage and queue may be nil, in
// which case the endpoints that need them answer 503.
func NewWatermarkHandler(
	processor *processor.DocumentProcessor,
	storage DocumentStore,
	queue JobQueue,
	logger *zap.Logger,
	config *config.Config,
) *WatermarkHandler {
	return &WatermarkHandler{
		processor: processor,
		storage:   storage,
		queue:     queue,
		logger:    logger,
		config:    config,
	}
}

// === MAIN API ENDPOINTS ===

// Stamp watermarks one uploaded document. The stamped bytes are returned
// directly unless upload=true, in which case the stored URL is returned.
func (h *WatermarkHandler) Stamp(c *gin.Context) {
	data, header, err := h.readFormFile(c, documentParamKey)
	if errors.Is(err, http.ErrMissingFile) {
		h.respondError(c, http.StatusBadRequest, "No document provided")
		return
	}
	if err != nil {
		h.respondErr(c, err)
		return
	}

	opts, image, err := h.parseOptions(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	if _, err := processor.ValidateDocument(data, h.config.Storage.MaxFileSize); err != nil {
		h.respondErr(c, err)
		return
	}

	result, err := h.processor.Process(c.Request.Context(), data, opts, image)
	if err != nil {
		h.logger.Error("Stamping failed", zap.String("filename", header.Filename), zap.Error(err))
		h.respondErr(c, err)
		return
	}

	upload, _ := strconv.ParseBool(c.DefaultPostForm(uploadParamKey, c.Query(uploadParamKey)))
	if !upload {
		h.respondWithDocument(c, header.Filename, result)
		return
	}

	if h.storage == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	doc, err := h.uploadResult(c.Request.Context(), header.Filename, result)
	if err != nil {
		h.logger.Error("Upload failed", zap.Error(err))
		h.respondError(c, http.StatusBadGateway, "Failed to upload stamped document")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    doc,
	})
}

// BatchStamp watermarks every uploaded document with the same options and
// uploads the results.
func (h *WatermarkHandler) BatchStamp(c *gin.Context) {
	if h.storage == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	files, err := h.readBatchFiles(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	opts, image, err := h.parseOptions(c)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	spec, err := h.processor.BuildSpec(opts, image)
	if err != nil {
		h.respondErr(c, err)
		return
	}

	items := h.processor.BatchProcess(c.Request.Context(), files, spec)
	response := h.buildBatchResponse(c.Request.Context(), items)

	c.JSON(http.StatusOK, models.APIResponse{
		Success: response.Status != models.StatusFailed,
		Data:    response,
	})
}

// SubmitJob queues a stamping job for a document reachable by URL.
func (h *WatermarkHandler) SubmitJob(c *gin.Context) {
	if h.queue == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Queue is not configured")
		return
	}

	var job models.ProcessingJob
	if err := c.ShouldBindJSON(&job); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid job: "+err.Error())
		return
	}

	// Reject a bad spec before it reaches a worker. The image itself is only
	// fetched by the worker.
	var probe []byte
	if job.Options.ImageURL != "" {
		probe = []byte{0}
	}
	if _, err := h.processor.BuildSpec(&job.Options, probe); err != nil {
		h.respondErr(c, err)
		return
	}

	if err := h.queue.PublishJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to publish job", zap.Error(err))
		h.respondError(c, http.StatusServiceUnavailable, "Failed to queue job")
		return
	}

	c.JSON(http.StatusAccepted, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

func (h *WatermarkHandler) GetJob(c *gin.Context) {
	if h.storage == nil {
		h.respondError(c, http.StatusServiceUnavailable, "Storage is not configured")
		return
	}

	job, err := h.storage.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			h.respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("Failed to load job", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    job,
	})
}

// Capabilities reports which document families and fonts this instance can
// stamp with.
func (h *WatermarkHandler) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: gin.H{
			"strategies": h.processor.Strategies(),
			"fonts":      asset.Families(),
		},
	})
}

// HealthCheck
func (h *WatermarkHandler) HealthCheck(c *gin.Context) {
	services := map[string]string{
		"storage": "not configured",
		"queue":   "not configured",
	}
	if h.storage != nil {
		delete(services, "storage")
		for name, status := range h.storage.HealthCheck(c.Request.Context()) {
			services[name] = status
		}
	}
	if h.queue != nil {
		services["queue"] = h.queue.HealthCheck()
	}

	overall := h.calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == "healthy",
		Data: models.HealthCheck{
			Status:     overall,
			Timestamp:  time.Now(),
			Services:   services,
			Strategies: h.processor.Strategies(),
		},
	})
}

func (h *WatermarkHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now(),
	}

	if h.storage != nil {
		cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
		if err != nil {
			h.logger.Error("Failed to get cache stats", zap.Error(err))
		}
		stats["cache"] = cacheStats
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Error("Failed to get queue stats", zap.Error(err))
		}
		stats["queue"] = queueStats
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    stats,
	})
}

func newDocumentID() string {
	return uuid.New().String()
}
