package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrJobNotFound = errors.New("job not found")

// SaveJob records the latest state of a queued job. Entries expire with the
// result cache.
func (s *StorageService) SaveJob(ctx context.Context, job *models.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.redisClient.Set(ctx, jobPrefix+job.ID, data, s.cacheDuration).Err()
}

func (s *StorageService) GetJob(ctx context.Context, id string) (*models.ProcessingJob, error) {
	data, err := s.redisClient.Get(ctx, jobPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("job get error: %w", err)
	}

	var job models.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}
