package storage

import (
	"time"

	"github.com/phambaophuc/doc-watermark/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
)

const (
	cachePrefix = "wm_cache:"
	jobPrefix   = "wm_job:"
)

type StorageService struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	uploadPath    string
	cacheDuration time.Duration
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	sbClient := storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.KEY, nil)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	cacheDuration := cfg.Storage.CacheDuration
	if cacheDuration <= 0 {
		cacheDuration = 24 * time.Hour
	}

	return &StorageService{
		sbClient:      sbClient,
		redisClient:   redisClient,
		bucket:        cfg.Supabase.BUCKET,
		uploadPath:    cfg.Storage.UploadPath,
		cacheDuration: cacheDuration,
	}, nil
}

// Close releases the Redis connection pool.
func (s *StorageService) Close() error {
	return s.redisClient.Close()
}
