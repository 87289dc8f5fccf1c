package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/config"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"go.uber.org/zap"
)

const DefaultWorkers = 4

type DocumentProcessor struct {
	engine   *watermark.Engine
	defaults config.WatermarkConfig
	logger   *zap.Logger
	workers  int
	timeout  time.Duration
}

// Result is one stamped document ready to be returned or uploaded.
type Result struct {
	Data         []byte
	InputFormat  classify.Format
	OutputFormat classify.Format
	ContentType  string
	// Extension includes the leading dot.
	Extension string
}

func NewDocumentProcessor(engine *watermark.Engine, defaults config.WatermarkConfig, logger *zap.Logger) *DocumentProcessor {
	workers := defaults.BatchWorkers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &DocumentProcessor{
		engine:   engine,
		defaults: defaults,
		logger:   logger,
		workers:  workers,
		timeout:  defaults.StampTimeout,
	}
}

// Process stamps data. image holds the watermark image bytes when the
// request carries one instead of text.
func (p *DocumentProcessor) Process(ctx context.Context, data []byte, opts *models.WatermarkOptions, image []byte) (*Result, error) {
	spec, err := p.BuildSpec(opts, image)
	if err != nil {
		return nil, err
	}
	return p.Stamp(ctx, data, spec)
}

// Stamp runs the engine on data with an already validated spec.
func (p *DocumentProcessor) Stamp(ctx context.Context, data []byte, spec *watermark.Spec) (*Result, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	doc := watermark.NewDocument(data)
	out, err := p.engine.Stamp(ctx, doc, spec)
	if err != nil {
		return nil, err
	}

	in, _ := doc.Format()
	outFormat, err := p.engine.OutputFormat(doc, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output format: %w", err)
	}

	return describe(out, in, outFormat), nil
}

func describe(out []byte, in, outFormat classify.Format) *Result {
	r := &Result{
		Data:         out,
		InputFormat:  in,
		OutputFormat: outFormat,
		ContentType:  outFormat.MIME(),
		Extension:    "." + outFormat.Extension(),
	}
	// Raster output keeps its own container, so ask the bytes.
	if outFormat == classify.Image {
		mt := mimetype.Detect(out)
		r.ContentType = mt.String()
		r.Extension = mt.Extension()
	}
	return r
}

// Strategies lists the strategies that have an adapter, in match order.
func (p *DocumentProcessor) Strategies() []string {
	strategies := p.engine.Registry().Strategies()
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		if s.Adapter() != nil {
			names = append(names, s.Name())
		}
	}
	return names
}
