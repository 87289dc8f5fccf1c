// Package alpha remaps the alpha channel of raster images pixel by pixel.
//
// Every operation returns a fresh *image.NRGBA and never writes to its input.
package alpha

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Key selects which color ColorKey turns transparent.
type Key int

const (
	KeyWhite Key = iota
	KeyBlack
	// KeyNone disables color keying.
	KeyNone
)

func (k Key) String() string {
	switch k {
	case KeyWhite:
		return "white"
	case KeyBlack:
		return "black"
	default:
		return "none"
	}
}

// ParseKey maps "white", "black" or "none" to a Key.
func ParseKey(s string) (Key, bool) {
	switch s {
	case "white":
		return KeyWhite, true
	case "black":
		return KeyBlack, true
	case "none", "":
		return KeyNone, true
	}
	return KeyNone, false
}

// ScaleOpacity multiplies every pixel's alpha by factor, which is clamped to
// [0, 1]. Color channels are left as they are.
func ScaleOpacity(img image.Image, factor float64) *image.NRGBA {
	dst := imaging.Clone(img)
	if !(factor > 0) {
		factor = 0
	}
	if factor >= 1 {
		return dst
	}

	forRows(dst, func(pix []uint8) {
		for i := 3; i < len(pix); i += 4 {
			pix[i] = clamp(math.Round(float64(pix[i]) * factor))
		}
	})
	return dst
}

// ColorKey makes fully transparent every pixel whose red, green and blue are
// each within offset of the key color: at least 255-offset for KeyWhite, at
// most offset for KeyBlack. Other pixels keep their alpha.
func ColorKey(img image.Image, key Key, offset int) *image.NRGBA {
	dst := imaging.Clone(img)
	if key == KeyNone {
		return dst
	}
	offset = min(max(offset, 0), 255)

	match := func(r, g, b uint8) bool {
		lo := uint8(255 - offset)
		return r >= lo && g >= lo && b >= lo
	}
	if key == KeyBlack {
		match = func(r, g, b uint8) bool {
			hi := uint8(offset)
			return r <= hi && g <= hi && b <= hi
		}
	}

	forRows(dst, func(pix []uint8) {
		for i := 0; i+3 < len(pix); i += 4 {
			if match(pix[i], pix[i+1], pix[i+2]) {
				pix[i+3] = 0
			}
		}
	})
	return dst
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
