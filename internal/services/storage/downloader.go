package storage

import (
	"context"
	"fmt"
)

// Download fetches an object from the configured bucket.
func (s *StorageService) Download(ctx context.Context, path string) ([]byte, error) {
	data, err := s.sbClient.DownloadFile(s.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}
	return data, nil
}
