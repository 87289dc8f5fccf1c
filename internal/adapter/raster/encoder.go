package raster

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// encodeImage writes img in the named format. WebP has no encoder, so it
// falls back to PNG.
func encodeImage(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "jpeg", "jpg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case "png", "webp":
		return imaging.Encode(w, img, imaging.PNG)
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	case "tiff":
		return imaging.Encode(w, img, imaging.TIFF)
	case "bmp":
		return imaging.Encode(w, img, imaging.BMP)
	default:
		return imaging.Encode(w, img, imaging.PNG)
	}
}
