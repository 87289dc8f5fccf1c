package pdf

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/fixtures"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const infoA4 = `{"header":{"version":"pdfcpu v0.8.0"},"infos":[{"source":"input.pdf","pageCount":3,"pageSizes":[{"width":595.28,"height":841.89}]}]}`

// fakePdfcpu logs its arguments, answers info with infoA4 and copies the
// input to the output for stamp.
func fakePdfcpu(t *testing.T) (binary, log string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts need a unix shell")
	}
	dir := t.TempDir()
	log = filepath.Join(dir, "calls.log")
	script := `#!/bin/sh
echo "$@" >> ` + log + `
case "$1" in
  info) echo '` + infoA4 + `' ;;
  stamp)
    [ -f "$8" ] || exit 3
    eval "in=\${$(($# - 1))}"
    eval "out=\${$#}"
    cp "$in" "$out" ;;
esac
`
	binary = filepath.Join(dir, "pdfcpu")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))
	return binary, log
}

func calls(t *testing.T, log string) []string {
	t.Helper()
	data, err := os.ReadFile(log)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestParseInfo(t *testing.T) {
	t.Run("json with one page size", func(t *testing.T) {
		info, err := parseInfo([]byte(infoA4))
		require.NoError(t, err)
		assert.True(t, info.uniform)
		assert.Equal(t, []geometry.Canvas{{Width: 595, Height: 842}, {Width: 595, Height: 842}, {Width: 595, Height: 842}}, info.canvases())
	})

	t.Run("json with mixed sizes", func(t *testing.T) {
		info, err := parseInfo([]byte(`{"infos":[{"pageCount":2,"pageSizes":[{"width":612,"height":792},{"width":792,"height":612}]}]}`))
		require.NoError(t, err)
		assert.False(t, info.uniform)
		assert.Equal(t, 2, info.pageCount)
		assert.Equal(t, geometry.Canvas{Width: 612, Height: 792}, info.first)
	})

	t.Run("text report", func(t *testing.T) {
		out := "     PDF version: 1.7\n      Page count: 4\n       Page size: 612.00 x 792.00 points\n"
		info, err := parseInfo([]byte(out))
		require.NoError(t, err)
		assert.True(t, info.uniform)
		assert.Equal(t, 4, info.pageCount)
		assert.Equal(t, geometry.Canvas{Width: 612, Height: 792}, info.first)
	})

	t.Run("unusable output", func(t *testing.T) {
		_, err := parseInfo([]byte("pdfcpu: unexpected error"))
		assert.Error(t, err)

		_, err = parseInfo([]byte(`{"infos":[{"pageCount":0}]}`))
		assert.Error(t, err)
	})
}

func TestCanvases(t *testing.T) {
	binary, _ := fakePdfcpu(t)
	tmp := t.TempDir()
	a := New(zaptest.NewLogger(t), WithBinary(binary), WithTempDir(tmp))

	canvases, err := a.Canvases(context.Background(), fixtures.PDF())
	require.NoError(t, err)
	assert.Len(t, canvases, 3)
	assert.Equal(t, geometry.Canvas{Width: 595, Height: 842}, canvases[2])

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInsertStampsOnlyPlacedPages(t *testing.T) {
	binary, log := fakePdfcpu(t)
	tmp := t.TempDir()
	a := New(zaptest.NewLogger(t), WithBinary(binary), WithTempDir(tmp))

	tile := asset.New(fixtures.Canvas(20, 20, color.NRGBA{R: 255, A: 255}))
	placements := []watermark.Placement{
		{Canvas: 2, Point: image.Pt(100, 100)},
		{Canvas: 0, Point: image.Pt(10, 10)},
		{Canvas: 0, Point: image.Pt(300, 10)},
	}

	out, err := a.Insert(context.Background(), fixtures.PDF(), tile, placements)
	require.NoError(t, err)
	assert.Equal(t, fixtures.PDF(), out)

	var stamps []string
	for _, c := range calls(t, log) {
		if strings.HasPrefix(c, "stamp") {
			stamps = append(stamps, c)
		}
	}
	require.Len(t, stamps, 2)
	assert.Contains(t, stamps[0], "-pages 1 ")
	assert.Contains(t, stamps[1], "-pages 3 ")
	assert.Contains(t, stamps[0], "-mode image")

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInsertWithoutPlacements(t *testing.T) {
	a := New(nil, WithBinary(filepath.Join(t.TempDir(), "missing")))
	out, err := a.Insert(context.Background(), fixtures.PDF(), asset.New(fixtures.Canvas(1, 1, color.Black)), nil)
	require.NoError(t, err)
	assert.Equal(t, fixtures.PDF(), out)
}

func TestInsertErrors(t *testing.T) {
	tile := asset.New(fixtures.Canvas(4, 4, color.Black))

	t.Run("page out of range", func(t *testing.T) {
		binary, _ := fakePdfcpu(t)
		a := New(nil, WithBinary(binary))
		_, err := a.Insert(context.Background(), fixtures.PDF(), tile, []watermark.Placement{{Canvas: 3}})
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("missing binary", func(t *testing.T) {
		a := New(nil, WithBinary(filepath.Join(t.TempDir(), "missing")))
		_, err := a.Insert(context.Background(), fixtures.PDF(), tile, []watermark.Placement{{Canvas: 0}})
		assert.Error(t, err)
	})
}
