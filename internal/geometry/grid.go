package geometry

import (
	"image"
	"iter"
)

// TileGrid yields the top-left corner of every tile needed to cover a
// canvasW x canvasH canvas. The walk starts at (xSpacing, ySpacing) and
// advances by tile size plus spacing, rows outer and columns inner. Tiles that
// start inside the canvas but run past its edge are included; clipping is the
// drawer's job.
//
// The sequence is computed on demand and can be ranged over any number of
// times. Negative spacing is treated as zero.
func TileGrid(canvasW, canvasH, tileW, tileH, xSpacing, ySpacing int) iter.Seq[image.Point] {
	xSpacing, ySpacing = max(xSpacing, 0), max(ySpacing, 0)
	stepX, stepY := tileW+xSpacing, tileH+ySpacing

	return func(yield func(image.Point) bool) {
		if stepX <= 0 || stepY <= 0 {
			return
		}
		for y := ySpacing; y < canvasH; y += stepY {
			for x := xSpacing; x < canvasW; x += stepX {
				if !yield(image.Pt(x, y)) {
					return
				}
			}
		}
	}
}

// TileCount reports how many columns and rows TileGrid produces for the same
// arguments without walking the grid.
func TileCount(canvasW, canvasH, tileW, tileH, xSpacing, ySpacing int) (cols, rows int) {
	xSpacing, ySpacing = max(xSpacing, 0), max(ySpacing, 0)
	return steps(canvasW, xSpacing, tileW+xSpacing), steps(canvasH, ySpacing, tileH+ySpacing)
}

func steps(limit, start, step int) int {
	if step <= 0 || start >= limit {
		return 0
	}
	return (limit-start-1)/step + 1
}
