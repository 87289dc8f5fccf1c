package storage

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/redis/go-redis/v9"
)

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// GenerateCacheKey hashes the document source, the request options and the
// watermark image. source is either the document bytes or its URL.
func (s *StorageService) GenerateCacheKey(source []byte, opts *models.WatermarkOptions, image []byte) string {
	hash := sha256.New()

	hash.Write(source)
	hash.Write([]byte{0})

	if opts != nil {
		// Field order is fixed by the struct, so the encoding is stable.
		optBytes, _ := json.Marshal(opts)
		hash.Write(optBytes)
	}
	hash.Write([]byte{0})

	hash.Write(image)

	return fmt.Sprintf("%s%x", cachePrefix, hash.Sum(nil))
}

func (s *StorageService) CleanupCache(ctx context.Context) error {
	keys, err := s.redisClient.Keys(ctx, cachePrefix+"*").Result()
	if err != nil {
		return err
	}

	for _, key := range keys {
		ttl := s.redisClient.TTL(ctx, key).Val()
		if ttl <= 0 {
			s.redisClient.Del(ctx, key)
		}
	}

	return nil
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	info, err := s.redisClient.Info(ctx, "memory").Result()
	if err != nil {
		return nil, err
	}

	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys": dbSize,
		"info":    info,
	}

	return stats, nil
}
