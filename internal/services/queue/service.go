package queue

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/services/processor"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	defaultQueueName = "watermark_jobs"
	prefetchCount    = 1
)

// ResultStore is the slice of storage.StorageService the workers need.
type ResultStore interface {
	GenerateCacheKey(source []byte, opts *models.WatermarkOptions, image []byte) string
	GetFromCache(ctx context.Context, cacheKey string) ([]byte, error)
	SetCache(ctx context.Context, cacheKey string, data []byte) error
	SaveFile(ctx context.Context, data []byte, filename, contentType string) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
	SaveJob(ctx context.Context, job *models.ProcessingJob) error
}

type QueueService struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	logger      *zap.Logger
	queueName   string
	maxFileSize int64
	processor   *processor.DocumentProcessor
	storage     ResultStore
	workers     atomic.Int32
}

type Options struct {
	URL         string
	Queue       string
	MaxFileSize int64
}

func NewQueueService(
	opts Options,
	processor *processor.DocumentProcessor,
	storage ResultStore,
	logger *zap.Logger,
) (*QueueService, error) {
	conn, err := amqp.Dial(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	queueName := opts.Queue
	if queueName == "" {
		queueName = defaultQueueName
	}

	_, err = channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.Qos(prefetchCount, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	return &QueueService{
		conn:        conn,
		channel:     channel,
		logger:      logger,
		queueName:   queueName,
		maxFileSize: opts.MaxFileSize,
		processor:   processor,
		storage:     storage,
	}, nil
}

// Close closes the queue connection
func (q *QueueService) Close() error {
	if q.channel != nil {
		q.channel.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
	return nil
}
