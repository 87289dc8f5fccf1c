package queue

import (
	"fmt"

	"github.com/streadway/amqp"
)

// GetQueueStats reports the backlog of watermark jobs and the workers
// consuming it from this process.
func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	queueInfo, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return q.statsFrom(queueInfo), nil
}

func (q *QueueService) statsFrom(info amqp.Queue) map[string]interface{} {
	return map[string]interface{}{
		"name":           info.Name,
		"pending_jobs":   info.Messages,
		"consumers":      info.Consumers,
		"local_workers":  q.workers.Load(),
		"prefetch":       prefetchCount,
		"max_file_bytes": q.maxFileSize,
	}
}

// HealthCheck is healthy while the connection is open and at least one
// local worker is consuming jobs.
func (q *QueueService) HealthCheck() string {
	if q.conn == nil || q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	if q.workers.Load() == 0 {
		return "unhealthy: no workers consuming"
	}

	return "healthy"
}
