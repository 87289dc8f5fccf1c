package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/pkg/utils"
	"go.uber.org/zap"
)

func (q *QueueService) processJob(ctx context.Context, job *models.ProcessingJob) (*models.StampedDocument, error) {
	cacheKey := q.storage.GenerateCacheKey([]byte(job.Source()), &job.Options, nil)

	cachedData, err := q.storage.GetFromCache(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var cachedResult models.StampedDocument
		if err := json.Unmarshal(cachedData, &cachedResult); err == nil {
			cachedResult.ID = job.ID
			cachedResult.Cached = true
			return &cachedResult, nil
		}
		q.logger.Warn("Failed to unmarshal cached data", zap.Error(err))
	}

	data, err := q.fetchDocument(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	var image []byte
	if job.Options.ImageURL != "" {
		image, _, err = utils.DownloadImage(ctx, job.Options.ImageURL, q.maxFileSize)
		if err != nil {
			return nil, fmt.Errorf("failed to download watermark image: %w", err)
		}
	}

	result, err := q.processor.Process(ctx, data, &job.Options, image)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp document: %w", err)
	}

	filename := utils.GenerateFilename(job.ID, result.Extension)
	url, err := q.storage.SaveFile(ctx, result.Data, filename, result.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save stamped document: %w", err)
	}

	stamped := &models.StampedDocument{
		ID:           job.ID,
		OriginalURL:  job.Source(),
		InputFormat:  result.InputFormat.String(),
		OutputFormat: result.OutputFormat.String(),
		ContentType:  result.ContentType,
		URL:          url,
		FileSize:     int64(len(result.Data)),
		ProcessedAt:  time.Now(),
	}

	resultBytes, _ := json.Marshal(stamped)
	if err := q.storage.SetCache(ctx, cacheKey, resultBytes); err != nil {
		q.logger.Warn("Failed to cache result", zap.Error(err))
	}

	return stamped, nil
}

func (q *QueueService) fetchDocument(ctx context.Context, job *models.ProcessingJob) ([]byte, error) {
	if job.DocumentPath == "" {
		return utils.Download(ctx, job.DocumentURL, q.maxFileSize)
	}

	data, err := q.storage.Download(ctx, job.DocumentPath)
	if err != nil {
		return nil, err
	}
	if q.maxFileSize > 0 && int64(len(data)) > q.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", utils.ErrTooLarge, q.maxFileSize)
	}
	return data, nil
}
