package watermark

import (
	"context"
	"image"

	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
	"github.com/phambaophuc/doc-watermark/internal/normalize"
)

// Placement is the top-left corner of one tile on one canvas.
type Placement struct {
	Canvas int
	Point  image.Point
}

// Adapter reads and writes one document family. Canvases are indexed in the
// order Canvases returns them.
type Adapter interface {
	Canvases(ctx context.Context, data []byte) ([]geometry.Canvas, error)
	Insert(ctx context.Context, data []byte, wm *asset.Asset, placements []Placement) ([]byte, error)
}

// Strategy decides whether it can stamp a document and which format it
// stamps in.
type Strategy interface {
	Name() string
	Supports(doc *Document) bool
	Canonical(f classify.Format) classify.Format
	Adapter() Adapter
}

// Adapters configures the built-in strategies. A nil adapter disables its
// strategy.
type Adapters struct {
	Word       Adapter
	Excel      Adapter
	PowerPoint Adapter
	Pdf        Adapter
	Image      Adapter
}

type familyStrategy struct {
	name    string
	match   func(classify.Format) bool
	adapter Adapter
}

// NewStrategy returns a strategy that claims every format match accepts and
// stamps it in its normalized form.
func NewStrategy(name string, adapter Adapter, match func(classify.Format) bool) Strategy {
	return &familyStrategy{name: name, match: match, adapter: adapter}
}

func (s *familyStrategy) Name() string { return s.name }

func (s *familyStrategy) Supports(doc *Document) bool {
	if s.adapter == nil || doc == nil {
		return false
	}
	f, err := doc.Format()
	if err != nil {
		return false
	}
	return s.match(f)
}

func (s *familyStrategy) Canonical(f classify.Format) classify.Format {
	return normalize.Canonical(f)
}

func (s *familyStrategy) Adapter() Adapter { return s.adapter }

func isPdfOrHTML(f classify.Format) bool { return f.IsPdf() || f.IsHTML() }

// builtins returns the built-in strategies in match order.
func builtins(a Adapters) []Strategy {
	return []Strategy{
		NewStrategy("excel", a.Excel, classify.Format.IsExcel),
		NewStrategy("image", a.Image, classify.Format.IsImage),
		NewStrategy("pdf", a.Pdf, isPdfOrHTML),
		NewStrategy("powerpoint", a.PowerPoint, classify.Format.IsPowerPoint),
		NewStrategy("word", a.Word, classify.Format.IsWord),
	}
}
