package geometry

import (
	"image"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// exactBoundingBox rotates the rectangle corners and measures their extent.
func exactBoundingBox(w, h int, deg float64) (float64, float64) {
	box := r2.NewBox(0, 0, float64(w), float64(h))
	center := box.Center()
	theta := deg * math.Pi / 180

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range box.Vertices() {
		p := r2.Rotate(v, theta, center)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

func TestRotatedBoundingBox(t *testing.T) {
	t.Run("zero angle is identity", func(t *testing.T) {
		test := [][2]int{{1, 1}, {100, 40}, {40, 100}, {1234, 7}}
		for _, tt := range test {
			w, h := RotatedBoundingBox(tt[0], tt[1], 0)
			assert.Equal(t, tt[0], w)
			assert.Equal(t, tt[1], h)
		}
	})

	t.Run("degenerate sides", func(t *testing.T) {
		test := []struct {
			w, h int
			deg  float64
		}{
			{0, 10, 45},
			{10, 0, 45},
			{0, 0, 0},
			{-5, 10, 30},
		}
		for _, tt := range test {
			w, h := RotatedBoundingBox(tt.w, tt.h, tt.deg)
			assert.Zero(t, w)
			assert.Zero(t, h)
		}
	})

	t.Run("quarter turns swap sides", func(t *testing.T) {
		test := []struct {
			deg  float64
			w, h int
		}{
			{90, 40, 100},
			{180, 100, 40},
			{270, 40, 100},
			{360, 100, 40},
			{-90, 40, 100},
			{450, 40, 100},
		}
		for _, tt := range test {
			w, h := RotatedBoundingBox(100, 40, tt.deg)
			assert.Equal(t, tt.w, w, "deg %v", tt.deg)
			assert.Equal(t, tt.h, h, "deg %v", tt.deg)
		}
	})

	t.Run("matches vertex rotation", func(t *testing.T) {
		sizes := [][2]int{{100, 40}, {40, 100}, {300, 300}, {517, 83}}
		for _, size := range sizes {
			for deg := 0; deg < 360; deg += 7 {
				w, h := RotatedBoundingBox(size[0], size[1], float64(deg))
				ew, eh := exactBoundingBox(size[0], size[1], float64(deg))
				assert.InDelta(t, ew, float64(w), 2, "width %v deg %d", size, deg)
				assert.InDelta(t, eh, float64(h), 2, "height %v deg %d", size, deg)
			}
		}
	})

	t.Run("symmetric under complement", func(t *testing.T) {
		for deg := 1; deg < 90; deg += 3 {
			w1, h1 := RotatedBoundingBox(180, 60, float64(deg))
			w2, h2 := RotatedBoundingBox(60, 180, float64(90-deg))
			assert.InDelta(t, w1, w2, 4, "deg %d", deg)
			assert.InDelta(t, h1, h2, 4, "deg %d", deg)
		}
	})

	t.Run("quarter fold is exact", func(t *testing.T) {
		for deg := 0; deg < 360; deg += 11 {
			w1, h1 := RotatedBoundingBox(180, 60, float64(deg+90))
			w2, h2 := RotatedBoundingBox(60, 180, float64(deg))
			assert.Equal(t, w2, w1, "deg %d", deg)
			assert.Equal(t, h2, h1, "deg %d", deg)
		}
	})

	t.Run("periodic and negative angles", func(t *testing.T) {
		for _, deg := range []float64{15, 45, 135, 200} {
			w, h := RotatedBoundingBox(120, 50, deg)
			w2, h2 := RotatedBoundingBox(120, 50, deg+720)
			w3, h3 := RotatedBoundingBox(120, 50, deg-360)
			assert.Equal(t, w, w2)
			assert.Equal(t, h, h2)
			assert.Equal(t, w, w3)
			assert.Equal(t, h, h3)
		}
	})
}

func TestNormalizeDegrees(t *testing.T) {
	test := []struct {
		in, exp float64
	}{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-720, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range test {
		assert.Equal(t, tt.exp, NormalizeDegrees(tt.in), "in %v", tt.in)
	}
}

func TestTileGrid(t *testing.T) {
	t.Run("10x10 grid", func(t *testing.T) {
		points := slices.Collect(TileGrid(100, 100, 10, 10, 0, 0))
		require.Len(t, points, 100)
		assert.Equal(t, image.Pt(0, 0), points[0])
		assert.Equal(t, image.Pt(10, 0), points[1])
		assert.Equal(t, image.Pt(0, 10), points[10])
		assert.Equal(t, image.Pt(90, 90), points[99])
	})

	t.Run("spacing offsets the start", func(t *testing.T) {
		points := slices.Collect(TileGrid(1000, 1000, 100, 100, 20, 20))
		require.Len(t, points, 81)
		assert.Equal(t, image.Pt(20, 20), points[0])
		assert.Equal(t, image.Pt(980, 980), points[80])

		cols, rows := TileCount(1000, 1000, 100, 100, 20, 20)
		assert.Equal(t, 9, cols)
		assert.Equal(t, 9, rows)
	})

	t.Run("every tile starts inside the canvas", func(t *testing.T) {
		for p := range TileGrid(333, 217, 47, 29, 5, 11) {
			assert.True(t, p.In(image.Rect(0, 0, 333, 217)), "point %v", p)
		}
	})

	t.Run("row major order", func(t *testing.T) {
		points := slices.Collect(TileGrid(50, 50, 20, 20, 0, 0))
		sorted := slices.Clone(points)
		slices.SortFunc(sorted, func(a, b image.Point) int {
			if a.Y != b.Y {
				return a.Y - b.Y
			}
			return a.X - b.X
		})
		assert.Equal(t, sorted, points)
	})

	t.Run("restartable", func(t *testing.T) {
		grid := TileGrid(100, 60, 30, 20, 5, 5)
		assert.Equal(t, slices.Collect(grid), slices.Collect(grid))
	})

	t.Run("stops early", func(t *testing.T) {
		n := 0
		for range TileGrid(1_000_000, 1_000_000, 1, 1, 0, 0) {
			n++
			if n == 5 {
				break
			}
		}
		assert.Equal(t, 5, n)
	})

	t.Run("count matches walk", func(t *testing.T) {
		test := [][6]int{
			{100, 100, 10, 10, 0, 0},
			{1000, 1000, 100, 100, 20, 20},
			{333, 217, 47, 29, 5, 11},
			{10, 10, 50, 50, 0, 0},
			{10, 10, 5, 5, 20, 20},
		}
		for _, tt := range test {
			cols, rows := TileCount(tt[0], tt[1], tt[2], tt[3], tt[4], tt[5])
			n := len(slices.Collect(TileGrid(tt[0], tt[1], tt[2], tt[3], tt[4], tt[5])))
			assert.Equal(t, cols*rows, n, "args %v", tt)
		}
	})

	t.Run("empty tile yields nothing", func(t *testing.T) {
		assert.Empty(t, slices.Collect(TileGrid(100, 100, 0, 0, 0, 0)))
		assert.Empty(t, slices.Collect(TileGrid(0, 0, 10, 10, 0, 0)))
	})
}

func TestPlanFor(t *testing.T) {
	canvas := Canvas{Width: 800, Height: 600}

	t.Run("single", func(t *testing.T) {
		plan := PlanFor(canvas, 100, 50, 80, 80, false)
		assert.False(t, plan.IsTiled())
		assert.Equal(t, []image.Point{{320, 220}}, slices.Collect(plan.Points()))
	})

	t.Run("tiled", func(t *testing.T) {
		plan := PlanFor(canvas, 100, 50, 80, 80, true)
		assert.True(t, plan.IsTiled())
		cols, rows := TileCount(800, 600, 100, 50, 80, 80)
		assert.Len(t, slices.Collect(plan.Points()), cols*rows)
	})

	t.Run("centered", func(t *testing.T) {
		assert.Equal(t, image.Pt(350, 275), CenteredPoint(canvas, 100, 50))
	})

	t.Run("zero plan", func(t *testing.T) {
		assert.Empty(t, slices.Collect(Tiled(nil).Points()))
	})
}
