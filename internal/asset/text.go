package asset

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// padding is added on every side of rendered text so glyph overhangs are not
// clipped.
const padding = 10

// DefaultColor is the light gray used when a text source has no color.
var DefaultColor = color.NRGBA{R: 192, G: 192, B: 192, A: 255}

// Text describes a single line of watermark text.
type Text struct {
	Content string
	// Family names a built-in font; FontData, when set, takes precedence.
	Family   string
	FontData []byte
	// Size is in points at 72 DPI, so one point is one pixel.
	Size  float64
	Color color.Color
}

// FromText renders t onto a transparent canvas. The canvas is the measured
// advance rounded up plus 20 pixels wide, and the font's line height rounded
// down plus 20 pixels tall.
func FromText(t Text) (*Asset, error) {
	if strings.TrimSpace(t.Content) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidSource)
	}
	if !(t.Size > 0) {
		return nil, fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidSource, t.Size)
	}

	f, err := loadFont(t.Family, t.FontData)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    t.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, t.Content).Ceil() + 2*padding
	height := metrics.Height.Floor() + 2*padding

	fill := t.Color
	if fill == nil {
		fill = DefaultColor
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(padding),
			Y: fixed.I(padding) + metrics.Ascent,
		},
	}
	d.DrawString(t.Content)

	return &Asset{img: img}, nil
}
