// Package watermark dispatches documents to stamping strategies and composes
// the watermark tiles they insert.
package watermark

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
	"github.com/phambaophuc/doc-watermark/internal/normalize"
	"go.uber.org/zap"
)

type Engine struct {
	registry   *Registry
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// NewEngine wires a registry and normalizer. A nil normalizer can only stamp
// documents that are already in their canonical format.
func NewEngine(registry *Registry, normalizer *normalize.Normalizer, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if normalizer == nil {
		normalizer = normalize.New(nil, logger)
	}
	return &Engine{
		registry:   registry,
		normalizer: normalizer,
		logger:     logger,
	}
}

func (e *Engine) Registry() *Registry { return e.registry }

// Stamp watermarks doc according to spec and returns the new document. Legacy
// office inputs come back in their modern format unless the spec asks for
// legacy output.
func (e *Engine) Stamp(ctx context.Context, doc *Document, spec *Spec) ([]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil spec", ErrInvalidSpec)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrClassification)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	strategy, err := e.registry.Match(doc)
	if err != nil {
		return nil, err
	}
	format, _ := doc.Format()
	target := strategy.Canonical(format)

	norm, err := e.normalizer.Normalize(ctx, doc.Bytes(), format, target)
	if err != nil {
		return nil, err
	}
	defer norm.Close()

	wm, err := Synthesize(spec)
	if err != nil {
		return nil, err
	}

	adapter := strategy.Adapter()
	canvases, err := adapter.Canvases(ctx, norm.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s canvases: %w", ErrAdapter, strategy.Name(), err)
	}

	placements := Place(canvases, wm, spec)

	out, err := adapter.Insert(ctx, norm.Data, wm, placements)
	if err != nil {
		return nil, fmt.Errorf("%w: %s insert: %w", ErrAdapter, strategy.Name(), err)
	}

	outFormat := target
	if format.IsLegacy() && spec.LegacyOutput() && norm.Converted() {
		out, err = e.normalizer.Denormalize(ctx, out, target, format)
		if err != nil {
			return nil, err
		}
		outFormat = format
	}

	e.logger.Info("Document stamped",
		zap.String("strategy", strategy.Name()),
		zap.String("input_format", format.String()),
		zap.String("output_format", outFormat.String()),
		zap.Int("canvases", len(canvases)),
		zap.Int("placements", len(placements)),
		zap.Int("output_size", len(out)),
		zap.Duration("duration", time.Since(start)))

	return out, nil
}

// StampFile stamps doc and writes the result to path.
func (e *Engine) StampFile(ctx context.Context, doc *Document, spec *Spec, path string) error {
	out, err := e.Stamp(ctx, doc, spec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write stamped document: %w", err)
	}
	return nil
}

// OutputFormat predicts the format Stamp returns for doc.
func (e *Engine) OutputFormat(doc *Document, spec *Spec) (classify.Format, error) {
	strategy, err := e.registry.Match(doc)
	if err != nil {
		return classify.Other, err
	}
	format, _ := doc.Format()
	if format.IsLegacy() && spec != nil && spec.LegacyOutput() {
		return format, nil
	}
	return strategy.Canonical(format), nil
}

// Place expands the spec's placement plan over every canvas. Empty canvases
// get no tiles.
func Place(canvases []geometry.Canvas, wm *asset.Asset, spec *Spec) []Placement {
	xs, ys := spec.Spacing()
	var placements []Placement
	for i, c := range canvases {
		if c.Empty() {
			continue
		}
		plan := geometry.PlanFor(c, wm.Width(), wm.Height(), xs, ys, spec.FullCoverage())
		for p := range plan.Points() {
			placements = append(placements, Placement{Canvas: i, Point: p})
		}
	}
	return placements
}
