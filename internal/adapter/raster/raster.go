// Package raster stamps watermarks onto single-frame raster images.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = 85

// Adapter treats the whole image as one canvas and re-encodes the result in
// the input's own format.
type Adapter struct {
	quality int
}

type Option func(*Adapter)

// WithQuality sets the JPEG quality used when the input was a JPEG.
func WithQuality(q int) Option {
	return func(a *Adapter) {
		if q > 0 && q <= 100 {
			a.quality = q
		}
	}
}

func New(opts ...Option) *Adapter {
	a := &Adapter{quality: DefaultQuality}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Canvases(_ context.Context, data []byte) ([]geometry.Canvas, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	return []geometry.Canvas{{Width: cfg.Width, Height: cfg.Height}}, nil
}

func (a *Adapter) Insert(ctx context.Context, data []byte, wm *asset.Asset, placements []watermark.Placement) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	stamped := image.NewRGBA(bounds)
	draw.Draw(stamped, bounds, img, bounds.Min, draw.Src)

	points := make([]image.Point, 0, len(placements))
	for _, p := range placements {
		if p.Canvas != 0 {
			return nil, fmt.Errorf("canvas %d out of range for a single-frame image", p.Canvas)
		}
		points = append(points, p.Point)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Compose(stamped, wm, points)

	buffer := &bytes.Buffer{}
	if err := encodeImage(buffer, stamped, format, a.quality); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buffer.Bytes(), nil
}

// Compose draws wm over dst with its top-left corner at each point. Points
// are relative to dst's bounds; tiles are clipped at the edges.
func Compose(dst draw.Image, wm *asset.Asset, points []image.Point) {
	src := wm.Image()
	origin := dst.Bounds().Min
	for _, p := range points {
		r := src.Bounds().Add(origin.Add(p))
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
	}
}

// Overlay returns a transparent canvas with wm composed at points.
func Overlay(c geometry.Canvas, wm *asset.Asset, points []image.Point) *image.NRGBA {
	overlay := imaging.New(c.Width, c.Height, color.Transparent)
	Compose(overlay, wm, points)
	return overlay
}
