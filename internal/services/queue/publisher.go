package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// PublishJob records the job as pending under a fresh ID and hands it to the
// workers.
func (q *QueueService) PublishJob(ctx context.Context, job *models.ProcessingJob) error {
	resetJob(job)

	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.storage.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to record pending job", zap.String("job_id", job.ID), zap.Error(err))
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    job.CreatedAt,
			MessageId:    job.ID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue", zap.String("job_id", job.ID))
	return nil
}

// resetJob discards any client-supplied identity or outcome so a submission
// can never overwrite another job's record.
func resetJob(job *models.ProcessingJob) {
	job.ID = uuid.New().String()
	job.Status = models.StatusPending
	job.CreatedAt = time.Now()
	job.Result = nil
	job.Error = ""
}
