package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/phambaophuc/doc-watermark/internal/models"
)

const uploadWorkers = 5

// UploadMultiple uploads files concurrently. The returned slice is indexed
// like files, with empty entries for failed uploads.
func (s *StorageService) UploadMultiple(ctx context.Context, files []models.UploadFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	numWorkers := uploadWorkers
	if len(files) < numWorkers {
		numWorkers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				buffer := bytes.NewBuffer(files[i].Data)
				urls[i], errs[i] = s.Upload(ctx, buffer, files[i].Filename, files[i].ContentType)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	var failedUploads []string
	for i, err := range errs {
		if err != nil {
			failedUploads = append(failedUploads, fmt.Sprintf("%s: %v", files[i].Filename, err))
		}
	}

	if len(failedUploads) > 0 {
		return urls, fmt.Errorf("failed to upload %d files: %s",
			len(failedUploads), strings.Join(failedUploads, "; "))
	}

	return urls, nil
}
