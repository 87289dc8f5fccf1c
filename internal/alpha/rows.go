package alpha

import (
	"image"
	"runtime"
	"sync"
)

// rowsPerWorker keeps small images on a single goroutine.
const rowsPerWorker = 64

// forRows calls fn with the pixel bytes of every row. Rows are split into
// disjoint bands, one goroutine per band.
func forRows(img *image.NRGBA, fn func(pix []uint8)) {
	height := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	if height == 0 || rowLen == 0 {
		return
	}

	band := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			fn(img.Pix[off : off+rowLen])
		}
	}

	workers := min(runtime.GOMAXPROCS(0), (height+rowsPerWorker-1)/rowsPerWorker)
	if workers <= 1 {
		band(0, height)
		return
	}

	chunk := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += chunk {
		y1 := min(y0+chunk, height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			band(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}
