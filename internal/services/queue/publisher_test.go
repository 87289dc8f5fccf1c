package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetJobAssignsFreshID(t *testing.T) {
	job := &models.ProcessingJob{
		ID:     "someone-elses-job",
		Status: models.StatusCompleted,
		Result: &models.StampedDocument{},
		Error:  "stale",
	}

	resetJob(job)

	assert.NotEqual(t, "someone-elses-job", job.ID)
	_, err := uuid.Parse(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, job.Status)
	assert.Nil(t, job.Result)
	assert.Empty(t, job.Error)
	assert.False(t, job.CreatedAt.IsZero())

	first := job.ID
	resetJob(job)
	assert.NotEqual(t, first, job.ID)
}

func TestQueueStats(t *testing.T) {
	q := newTestQueue(t, newFakeStore())
	q.workers.Add(3)

	stats := q.statsFrom(amqp.Queue{Name: defaultQueueName, Messages: 7, Consumers: 3})

	assert.Equal(t, defaultQueueName, stats["name"])
	assert.Equal(t, 7, stats["pending_jobs"])
	assert.Equal(t, int32(3), stats["local_workers"])
	assert.Equal(t, prefetchCount, stats["prefetch"])
	assert.Equal(t, int64(1<<20), stats["max_file_bytes"])
}

func TestQueueHealthWithoutConnection(t *testing.T) {
	q := newTestQueue(t, newFakeStore())
	assert.Equal(t, "unhealthy: connection closed", q.HealthCheck())
}
