// Package asset synthesizes watermark tiles: text rendered onto a transparent
// canvas or a decoded image, rotated and faded ready for stamping.
package asset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	// ErrInvalidSource reports a watermark source that cannot produce a tile,
	// such as empty text or an unknown font family.
	ErrInvalidSource = errors.New("invalid watermark source")
	// ErrDecode reports image or font bytes that could not be decoded.
	ErrDecode = errors.New("failed to decode watermark asset")
)

// Asset is a finished or intermediate watermark tile. Its pixels are never
// modified after construction.
type Asset struct {
	img *image.NRGBA
}

// New copies img into a new asset.
func New(img image.Image) *Asset {
	return &Asset{img: imaging.Clone(img)}
}

// Image returns the tile pixels. Callers must treat them as read-only.
func (a *Asset) Image() *image.NRGBA {
	return a.img
}

func (a *Asset) Bounds() image.Rectangle {
	return a.img.Bounds()
}

func (a *Asset) Width() int {
	return a.img.Bounds().Dx()
}

func (a *Asset) Height() int {
	return a.img.Bounds().Dy()
}

// EncodePNG writes the tile as PNG, keeping its alpha channel.
func (a *Asset) EncodePNG(w io.Writer) error {
	if err := imaging.Encode(w, a.img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode watermark: %w", err)
	}
	return nil
}

// PNG returns the tile encoded as PNG.
func (a *Asset) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP watermark as is.
func FromImage(data []byte) (*Asset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidSource)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no pixels", ErrDecode)
	}

	return &Asset{img: imaging.Clone(img)}, nil
}
