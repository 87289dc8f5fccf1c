package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var ErrTooLarge = errors.New("download exceeds size limit")

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Download fetches url and fails when the body is empty or larger than
// maxSize bytes.
func Download(ctx context.Context, url string, maxSize int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response from %s", url)
	}

	return data, nil
}

// DownloadImage is Download restricted to raster images usable as a
// watermark source.
func DownloadImage(ctx context.Context, imageURL string, maxSize int64) ([]byte, string, error) {
	data, err := Download(ctx, imageURL, maxSize)
	if err != nil {
		return nil, "", err
	}

	contentType := mimetype.Detect(data).String()
	if !IsValidImageType(contentType) {
		return nil, "", fmt.Errorf("invalid content type: %s", contentType)
	}

	return data, contentType, nil
}

// IsValidImageType checks if content type is a valid image type
func IsValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/bmp",
		"image/tiff",
	}

	ct := strings.ToLower(contentType)
	for _, validType := range validTypes {
		if strings.Contains(ct, validType) {
			return true
		}
	}
	return false
}
