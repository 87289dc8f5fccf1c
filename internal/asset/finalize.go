package asset

import (
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/doc-watermark/internal/alpha"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
)

// FinalizeOptions tunes the color key applied after rotation.
type FinalizeOptions struct {
	Key       alpha.Key
	KeyOffset int
}

// DefaultFinalizeOptions keys out near-white pixels within 16 levels.
func DefaultFinalizeOptions() FinalizeOptions {
	return FinalizeOptions{Key: alpha.KeyWhite, KeyOffset: 16}
}

// Finalize rotates a clockwise by deg degrees onto a transparent canvas sized
// by geometry.RotatedBoundingBox, keys out the background color and scales
// the result's opacity.
func Finalize(a *Asset, deg, opacity float64, opts FinalizeOptions) *Asset {
	src := a.img
	deg = geometry.NormalizeDegrees(deg)

	out := src
	if deg != 0 {
		w, h := geometry.RotatedBoundingBox(src.Bounds().Dx(), src.Bounds().Dy(), deg)
		// imaging rotates counter-clockwise.
		rotated := imaging.Rotate(src, -deg, color.Transparent)
		out = imaging.PasteCenter(imaging.New(w, h, color.Transparent), rotated)
	}

	out = alpha.ColorKey(out, opts.Key, opts.KeyOffset)
	out = alpha.ScaleOpacity(out, opacity)

	return &Asset{img: out}
}
