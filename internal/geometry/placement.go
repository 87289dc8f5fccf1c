package geometry

import (
	"fmt"
	"image"
	"iter"
)

// Canvas is one page, sheet, slide or frame as reported by a document adapter.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (c Canvas) Empty() bool {
	return c.Width <= 0 || c.Height <= 0
}

func (c Canvas) String() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// Plan is where a watermark tile lands on one canvas: either one point or a
// lazily computed grid.
type Plan struct {
	tiled  bool
	single image.Point
	grid   iter.Seq[image.Point]
}

func Single(p image.Point) Plan {
	return Plan{single: p}
}

func Tiled(grid iter.Seq[image.Point]) Plan {
	return Plan{tiled: true, grid: grid}
}

func (p Plan) IsTiled() bool {
	return p.tiled
}

// Points yields the top-left corner of every tile in the plan.
func (p Plan) Points() iter.Seq[image.Point] {
	if p.tiled {
		if p.grid == nil {
			return func(func(image.Point) bool) {}
		}
		return p.grid
	}
	return func(yield func(image.Point) bool) {
		yield(p.single)
	}
}

// SinglePoint places a tile at (width/2 - offsetX, height/2 - offsetY). The
// offset is taken as supplied; use CenteredPoint for true centering.
func SinglePoint(c Canvas, offsetX, offsetY int) image.Point {
	return image.Pt(c.Width/2-offsetX, c.Height/2-offsetY)
}

// CenteredPoint returns the top-left corner that centers a tileW x tileH tile.
func CenteredPoint(c Canvas, tileW, tileH int) image.Point {
	return SinglePoint(c, tileW/2, tileH/2)
}

// PlanFor builds the placement plan for one canvas. With fullCoverage the tile
// is repeated over the whole canvas; otherwise the spacing doubles as the
// center-relative offset of a single placement.
func PlanFor(c Canvas, tileW, tileH, xSpacing, ySpacing int, fullCoverage bool) Plan {
	if fullCoverage {
		return Tiled(TileGrid(c.Width, c.Height, tileW, tileH, xSpacing, ySpacing))
	}
	return Single(SinglePoint(c, xSpacing, ySpacing))
}
