package processor

import (
	"context"
	"sync"

	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"go.uber.org/zap"
)

// BatchItem is the outcome for one file of a batch, in input order.
type BatchItem struct {
	Filename string
	Result   *Result
	Err      error
}

// BatchProcess stamps every file with the same spec on a bounded worker
// pool.
func (p *DocumentProcessor) BatchProcess(ctx context.Context, files []models.UploadFile, spec *watermark.Spec) []BatchItem {
	results := make([]BatchItem, len(files))
	jobs := make(chan int, len(files))

	numWorkers := p.workers
	if len(files) < numWorkers {
		numWorkers = len(files)
	}

	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.processBatchJob(ctx, i, files, spec, results)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (p *DocumentProcessor) processBatchJob(ctx context.Context, i int, files []models.UploadFile, spec *watermark.Spec, results []BatchItem) {
	results[i].Filename = files[i].Filename

	if err := ctx.Err(); err != nil {
		results[i].Err = err
		return
	}

	result, err := p.Stamp(ctx, files[i].Data, spec)
	if err != nil {
		p.logger.Warn("Batch item failed",
			zap.String("filename", files[i].Filename),
			zap.Error(err))
		results[i].Err = err
		return
	}
	results[i].Result = result
}
