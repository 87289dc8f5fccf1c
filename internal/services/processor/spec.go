package processor

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/phambaophuc/doc-watermark/internal/alpha"
	"github.com/phambaophuc/doc-watermark/internal/models"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
)

// BuildSpec merges request options with the configured defaults and validates
// the result. This is the only place the 0..10 opacity scale is accepted.
func (p *DocumentProcessor) BuildSpec(opts *models.WatermarkOptions, image []byte) (*watermark.Spec, error) {
	if opts == nil {
		opts = &models.WatermarkOptions{}
	}

	src, err := watermark.SourceFrom(opts.Text, image)
	if err != nil {
		return nil, err
	}

	if text, ok := src.(watermark.TextSource); ok {
		text.Font = firstNonEmpty(opts.Font, p.defaults.FontFamily)
		text.Size = opts.FontSize
		if text.Size == 0 {
			text.Size = p.defaults.FontSize
		}
		c, err := ParseColor(firstNonEmpty(opts.Color, p.defaults.Color))
		if err != nil {
			return nil, err
		}
		text.Color = c
		src = text
	}

	opacity := p.defaults.Opacity
	switch {
	case opts.Opacity != nil:
		opacity = *opts.Opacity
	case opts.OpacityLevel != nil:
		if opacity, err = watermark.OpacityFromLevel(*opts.OpacityLevel); err != nil {
			return nil, err
		}
	}

	xs, ys := p.defaults.XSpacing, p.defaults.YSpacing
	if opts.XSpacing != nil {
		xs = *opts.XSpacing
	}
	if opts.YSpacing != nil {
		ys = *opts.YSpacing
	}

	keepLegacy := p.defaults.KeepLegacyOut
	if opts.KeepLegacy != nil {
		keepLegacy = *opts.KeepLegacy
	}

	key, ok := alpha.ParseKey(firstNonEmpty(opts.ColorKey, p.defaults.ColorKey))
	if !ok {
		return nil, fmt.Errorf("%w: unknown color key %q", watermark.ErrInvalidSpec, opts.ColorKey)
	}
	offset := p.defaults.KeyOffset
	if opts.KeyOffset != nil {
		offset = *opts.KeyOffset
	}

	rotation := p.defaults.Rotation
	if opts.Rotation != nil {
		rotation = *opts.Rotation
	}

	return watermark.NewSpec(src,
		watermark.WithOpacity(opacity),
		watermark.WithRotation(rotation),
		watermark.WithSpacing(xs, ys),
		watermark.WithFullCoverage(opts.FullCoverage),
		watermark.WithLegacyOutput(keepLegacy),
		watermark.WithColorKey(key, offset),
	)
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa, with or without the hash.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color %q", watermark.ErrInvalidSpec, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: invalid color %q", watermark.ErrInvalidSpec, s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
