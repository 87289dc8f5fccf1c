package watermark

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/phambaophuc/doc-watermark/internal/alpha"
	"github.com/phambaophuc/doc-watermark/internal/asset"
)

const (
	DefaultOpacity  = 0.5
	DefaultFontSize = 60
	DefaultSpacing  = 80
)

// Source is either a TextSource or an ImageSource.
type Source interface {
	isSource()
}

// TextSource renders a single line of text. Zero values select the default
// font family, size and color.
type TextSource struct {
	Text     string
	Font     string
	FontData []byte
	Size     float64
	Color    color.Color
}

// ImageSource stamps a caller-supplied image as is.
type ImageSource struct {
	Data []byte
}

func (TextSource) isSource()  {}
func (ImageSource) isSource() {}

// SourceFrom builds a Source from raw optional inputs. Exactly one of text and
// image must be set.
func SourceFrom(text string, image []byte) (Source, error) {
	hasText := strings.TrimSpace(text) != ""
	hasImage := len(image) > 0

	switch {
	case hasText && hasImage:
		return nil, fmt.Errorf("%w: both text and image are set", ErrInvalidSpec)
	case !hasText && !hasImage:
		return nil, fmt.Errorf("%w: neither text nor image is set", ErrInvalidSpec)
	case hasImage:
		return ImageSource{Data: image}, nil
	}
	return TextSource{Text: text}, nil
}

// OpacityFromLevel converts the 0..10 integer opacity scale to the 0..1 scale
// a Spec carries.
func OpacityFromLevel(level int) (float64, error) {
	if level < 0 || level > 10 {
		return 0, fmt.Errorf("%w: opacity level %d outside 0..10", ErrInvalidSpec, level)
	}
	return float64(level) / 10, nil
}

// Spec is a validated watermark request. Build it with NewSpec.
type Spec struct {
	source       Source
	opacity      float64
	rotation     float64
	xSpacing     int
	ySpacing     int
	fullCoverage bool
	legacyOutput bool
	finalize     asset.FinalizeOptions
}

type Option func(*Spec)

func WithOpacity(opacity float64) Option {
	return func(s *Spec) { s.opacity = opacity }
}

// WithRotation sets the clockwise rotation in degrees. Any finite value is
// accepted and reduced modulo 360.
func WithRotation(deg float64) Option {
	return func(s *Spec) { s.rotation = deg }
}

func WithSpacing(x, y int) Option {
	return func(s *Spec) { s.xSpacing, s.ySpacing = x, y }
}

func WithFullCoverage(full bool) Option {
	return func(s *Spec) { s.fullCoverage = full }
}

// WithLegacyOutput returns legacy office documents in their original format
// instead of the modern one they were stamped in.
func WithLegacyOutput(keep bool) Option {
	return func(s *Spec) { s.legacyOutput = keep }
}

func WithColorKey(key alpha.Key, offset int) Option {
	return func(s *Spec) { s.finalize = asset.FinalizeOptions{Key: key, KeyOffset: offset} }
}

// NewSpec validates src and opts and fills in defaults.
func NewSpec(src Source, opts ...Option) (*Spec, error) {
	s := &Spec{
		opacity:  DefaultOpacity,
		xSpacing: DefaultSpacing,
		ySpacing: DefaultSpacing,
		finalize: asset.DefaultFinalizeOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch v := src.(type) {
	case TextSource:
		if strings.TrimSpace(v.Text) == "" {
			return nil, fmt.Errorf("%w: empty text", ErrInvalidSpec)
		}
		if v.Size == 0 {
			v.Size = DefaultFontSize
		}
		if !(v.Size > 0) || math.IsInf(v.Size, 0) {
			return nil, fmt.Errorf("%w: font size %v", ErrInvalidSpec, v.Size)
		}
		if v.Color == nil {
			v.Color = asset.DefaultColor
		}
		s.source = v
	case ImageSource:
		if len(v.Data) == 0 {
			return nil, fmt.Errorf("%w: empty image", ErrInvalidSpec)
		}
		s.source = v
	case nil:
		return nil, fmt.Errorf("%w: no watermark source", ErrInvalidSpec)
	default:
		return nil, fmt.Errorf("%w: unknown source %T", ErrInvalidSpec, src)
	}

	if math.IsNaN(s.opacity) || s.opacity < 0 || s.opacity > 1 {
		return nil, fmt.Errorf("%w: opacity %v outside 0..1", ErrInvalidSpec, s.opacity)
	}
	if math.IsNaN(s.rotation) || math.IsInf(s.rotation, 0) {
		return nil, fmt.Errorf("%w: rotation %v", ErrInvalidSpec, s.rotation)
	}
	if s.xSpacing < 0 || s.ySpacing < 0 {
		return nil, fmt.Errorf("%w: negative spacing %d,%d", ErrInvalidSpec, s.xSpacing, s.ySpacing)
	}
	if s.finalize.KeyOffset < 0 || s.finalize.KeyOffset > 255 {
		return nil, fmt.Errorf("%w: color key offset %d outside 0..255", ErrInvalidSpec, s.finalize.KeyOffset)
	}

	return s, nil
}

func (s *Spec) Source() Source      { return s.source }
func (s *Spec) Opacity() float64    { return s.opacity }
func (s *Spec) Rotation() float64   { return s.rotation }
func (s *Spec) Spacing() (int, int) { return s.xSpacing, s.ySpacing }
func (s *Spec) FullCoverage() bool  { return s.fullCoverage }
func (s *Spec) LegacyOutput() bool  { return s.legacyOutput }

// ColorKey returns the background key applied to image tiles after rotation.
func (s *Spec) ColorKey() asset.FinalizeOptions { return s.finalize }

// Synthesize renders the spec's source into a finished watermark tile.
func Synthesize(s *Spec) (*asset.Asset, error) {
	var (
		raw *asset.Asset
		err error
	)
	finalize := s.finalize
	switch v := s.source.(type) {
	case TextSource:
		// Text renders on a transparent canvas; keying would erase light glyphs.
		finalize.Key = alpha.KeyNone
		raw, err = asset.FromText(asset.Text{
			Content:  v.Text,
			Family:   v.Font,
			FontData: v.FontData,
			Size:     v.Size,
			Color:    v.Color,
		})
	case ImageSource:
		raw, err = asset.FromImage(v.Data)
	default:
		return nil, fmt.Errorf("%w: no watermark source", ErrInvalidSpec)
	}
	if err != nil {
		return nil, classifyError(err)
	}

	return asset.Finalize(raw, s.rotation, s.opacity, finalize), nil
}
