package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phambaophuc/doc-watermark/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

func (s *StorageService) SaveFile(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	buffer := bytes.NewBuffer(data)
	return s.Upload(ctx, buffer, filename, contentType)
}

// Upload uploads file to Supabase Storage
func (s *StorageService) Upload(ctx context.Context, buffer *bytes.Buffer, filename, contentType string) (string, error) {
	key := utils.GenerateStorageKey(s.uploadPath, filename)

	upsert := false
	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(buffer.Bytes()), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}
