package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/services/processor"
	"github.com/phambaophuc/doc-watermark/pkg/utils"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

// === REQUEST PARSING ===

// parseOptions binds the watermark options and resolves the optional
// watermark image, uploaded or referenced by image_url.
func (h *WatermarkHandler) parseOptions(c *gin.Context) (*models.WatermarkOptions, []byte, error) {
	var opts models.WatermarkOptions
	if err := c.ShouldBind(&opts); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid options: %v", errBadRequest, err)
	}

	image, _, err := h.readFormFile(c, imageParamKey)
	switch {
	case err == nil:
		if opts.ImageURL != "" {
			return nil, nil, fmt.Errorf("%w: both image and image_url are set", errBadRequest)
		}
		return &opts, image, nil
	case !errors.Is(err, http.ErrMissingFile):
		return nil, nil, err
	}

	if opts.ImageURL != "" {
		image, _, err = utils.DownloadImage(c.Request.Context(), opts.ImageURL, h.config.Storage.MaxFileSize)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}

	return &opts, image, nil
}

func (h *WatermarkHandler) parseMultipartForm(c *gin.Context) error {
	if c.Request.MultipartForm != nil {
		return nil
	}
	if err := c.Request.ParseMultipartForm(h.config.Storage.MaxFileSize * 10); err != nil {
		return fmt.Errorf("%w: failed to parse form data: %v", errBadRequest, err)
	}
	return nil
}

// === FILE OPERATIONS ===

func (h *WatermarkHandler) readFormFile(c *gin.Context, paramKey string) ([]byte, *multipart.FileHeader, error) {
	if err := h.parseMultipartForm(c); err != nil {
		return nil, nil, err
	}

	header, err := c.FormFile(paramKey)
	if err != nil {
		return nil, nil, err
	}

	data, err := h.readFileHeader(header)
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}

func (h *WatermarkHandler) readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	maxSize := h.config.Storage.MaxFileSize
	if maxSize > 0 && header.Size > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", processor.ErrFileTooLarge, header.Filename, header.Size)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (h *WatermarkHandler) readBatchFiles(c *gin.Context) ([]models.UploadFile, error) {
	if err := h.parseMultipartForm(c); err != nil {
		return nil, err
	}

	headers := c.Request.MultipartForm.File[documentsParamKey]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no documents provided", errBadRequest)
	}

	files := make([]models.UploadFile, 0, len(headers))
	for _, header := range headers {
		data, err := h.readFileHeader(header)
		if err != nil {
			return nil, err
		}
		files = append(files, models.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return files, nil
}

// === RESPONSE HANDLING ===

func (h *WatermarkHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *WatermarkHandler) respondErr(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.respondError(c, status, "Failed to process document")
		return
	}
	h.respondError(c, status, err.Error())
}

func (h *WatermarkHandler) respondWithDocument(c *gin.Context, originalName string, result *processor.Result) {
	name := utils.StampedName(originalName, result.Extension)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("X-Input-Format", result.InputFormat.String())
	c.Header("X-Output-Format", result.OutputFormat.String())
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// === STORAGE OPERATIONS ===

func (h *WatermarkHandler) uploadResult(ctx context.Context, originalName string, result *processor.Result) (*models.StampedDocument, error) {
	url, err := h.storage.SaveFile(ctx, result.Data, utils.StampedName(originalName, result.Extension), result.ContentType)
	if err != nil {
		return nil, err
	}

	return &models.StampedDocument{
		ID:           newDocumentID(),
		OriginalName: originalName,
		InputFormat:  result.InputFormat.String(),
		OutputFormat: result.OutputFormat.String(),
		ContentType:  result.ContentType,
		URL:          url,
		FileSize:     int64(len(result.Data)),
		ProcessedAt:  time.Now(),
	}, nil
}

// buildBatchResponse uploads the successful items in one pass and reports
// the rest, in input order.
func (h *WatermarkHandler) buildBatchResponse(ctx context.Context, items []processor.BatchItem) models.BatchResponse {
	response := models.BatchResponse{
		JobID:       newDocumentID(),
		ProcessedAt: time.Now(),
	}

	var (
		uploads []models.UploadFile
		stamped []int
	)
	for i, item := range items {
		if item.Err != nil {
			continue
		}
		uploads = append(uploads, models.UploadFile{
			Filename:    utils.StampedName(item.Filename, item.Result.Extension),
			ContentType: item.Result.ContentType,
			Data:        item.Result.Data,
		})
		stamped = append(stamped, i)
	}

	urls, err := h.storage.UploadMultiple(ctx, uploads)
	if err != nil {
		h.logger.Warn("Failed to upload to Storage", zap.Error(err))
	}

	uploaded := make(map[int]models.StampedDocument, len(stamped))
	for i, idx := range stamped {
		if i >= len(urls) || urls[i] == "" {
			continue
		}
		item := items[idx]
		uploaded[idx] = models.StampedDocument{
			ID:           newDocumentID(),
			OriginalName: item.Filename,
			InputFormat:  item.Result.InputFormat.String(),
			OutputFormat: item.Result.OutputFormat.String(),
			ContentType:  item.Result.ContentType,
			URL:          urls[i],
			FileSize:     int64(len(item.Result.Data)),
			ProcessedAt:  response.ProcessedAt,
		}
	}

	for i, item := range items {
		if doc, ok := uploaded[i]; ok {
			response.Documents = append(response.Documents, doc)
			continue
		}
		reason := "upload failed"
		if item.Err != nil {
			reason = item.Err.Error()
		}
		response.Failed = append(response.Failed, models.BatchFailure{
			Filename: item.Filename,
			Error:    reason,
		})
	}

	switch {
	case len(response.Failed) == 0:
		response.Status = models.StatusCompleted
	case len(response.Documents) == 0:
		response.Status = models.StatusFailed
	default:
		response.Status = models.StatusPartial
	}

	return response
}

// === UTILITY METHODS ===

func (h *WatermarkHandler) calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != "not configured" {
			return "unhealthy"
		}
	}
	return "healthy"
}
