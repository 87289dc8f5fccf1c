// Package pdf stamps watermarks onto PDF pages through the pdfcpu command
// line tool.
package pdf

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/doc-watermark/internal/adapter/raster"
	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/geometry"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"go.uber.org/zap"
)

const (
	DefaultBinary  = "pdfcpu"
	DefaultTimeout = 60 * time.Second
)

// stampDescription places a page-sized overlay exactly over the page.
const stampDescription = "pos:c, off:0 0, scale:1 abs, rot:0, op:1"

type Adapter struct {
	binary  string
	tempDir string
	timeout time.Duration
	logger  *zap.Logger
}

type Option func(*Adapter)

func WithBinary(path string) Option {
	return func(a *Adapter) {
		if path != "" {
			a.binary = path
		}
	}
}

func WithTempDir(dir string) Option {
	return func(a *Adapter) { a.tempDir = dir }
}

func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func New(logger *zap.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Canvases reports one canvas per page, sized in PDF points.
func (a *Adapter) Canvases(ctx context.Context, data []byte) ([]geometry.Canvas, error) {
	workDir, err := os.MkdirTemp(a.tempDir, "pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	input := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input: %w", err)
	}

	output, err := a.exec(ctx, "info", "-j", input)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu info failed: %w", err)
	}

	info, err := parseInfo(output)
	if err != nil {
		return nil, err
	}
	if info.uniform {
		return info.canvases(), nil
	}

	// Mixed page sizes: ask for each page on its own.
	canvases := make([]geometry.Canvas, 0, info.pageCount)
	for page := 1; page <= info.pageCount; page++ {
		output, err := a.exec(ctx, "info", "-j", "-pages", strconv.Itoa(page), input)
		if err != nil {
			return nil, fmt.Errorf("pdfcpu info page %d failed: %w", page, err)
		}
		pi, err := parseInfo(output)
		if err != nil {
			return nil, err
		}
		canvases = append(canvases, pi.first)
	}
	return canvases, nil
}

// Insert renders one transparent overlay per stamped page and stamps it over
// the page with pdfcpu.
func (a *Adapter) Insert(ctx context.Context, data []byte, wm *asset.Asset, placements []watermark.Placement) ([]byte, error) {
	if len(placements) == 0 {
		return data, nil
	}

	canvases, err := a.Canvases(ctx, data)
	if err != nil {
		return nil, err
	}

	byCanvas := make(map[int][]image.Point)
	for _, p := range placements {
		if p.Canvas < 0 || p.Canvas >= len(canvases) {
			return nil, fmt.Errorf("page %d out of range, document has %d", p.Canvas+1, len(canvases))
		}
		byCanvas[p.Canvas] = append(byCanvas[p.Canvas], p.Point)
	}

	workDir, err := os.MkdirTemp(a.tempDir, "pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	current := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(current, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input: %w", err)
	}

	pages := make([]int, 0, len(byCanvas))
	for idx := range byCanvas {
		pages = append(pages, idx)
	}
	slices.Sort(pages)

	start := time.Now()
	for _, idx := range pages {
		page := idx + 1
		overlay := filepath.Join(workDir, fmt.Sprintf("overlay-%d.png", page))
		img := raster.Overlay(canvases[idx], wm, byCanvas[idx])
		if err := imaging.Save(img, overlay); err != nil {
			return nil, fmt.Errorf("failed to write overlay for page %d: %w", page, err)
		}

		next := filepath.Join(workDir, fmt.Sprintf("stamped-%d.pdf", page))
		_, err := a.exec(ctx, "stamp", "add",
			"-pages", strconv.Itoa(page),
			"-mode", "image",
			"--", overlay, stampDescription, current, next)
		if err != nil {
			return nil, fmt.Errorf("pdfcpu stamp page %d failed: %w", page, err)
		}
		current = next
	}

	out, err := os.ReadFile(current)
	if err != nil {
		return nil, fmt.Errorf("failed to read stamped document: %w", err)
	}

	a.logger.Debug("Stamped PDF",
		zap.Int("pages", len(pages)),
		zap.Int("placements", len(placements)),
		zap.Duration("duration", time.Since(start)))

	return out, nil
}
