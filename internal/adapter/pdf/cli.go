package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/phambaophuc/doc-watermark/internal/geometry"
)

func (a *Adapter) exec(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.binary, args...)
	output, err := cmd.CombinedOutput()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("command timed out after %v", a.timeout)
	}
	if err != nil {
		return output, fmt.Errorf("command failed: %w\noutput: %s", err, output)
	}
	return output, nil
}

type pageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type infoJSON struct {
	Infos []struct {
		PageCount int        `json:"pageCount"`
		PageSizes []pageSize `json:"pageSizes"`
	} `json:"infos"`
}

type pdfInfo struct {
	pageCount int
	first     geometry.Canvas
	// uniform is set when every page shares first's size.
	uniform bool
}

func (i pdfInfo) canvases() []geometry.Canvas {
	out := make([]geometry.Canvas, i.pageCount)
	for p := range out {
		out[p] = i.first
	}
	return out
}

var (
	pageCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Page count:\s+(\d+)`),
		regexp.MustCompile(`Pages:\s+(\d+)`),
		regexp.MustCompile(`No\. of pages:\s+(\d+)`),
	}
	pageSizePattern = regexp.MustCompile(`Page size:\s+([\d.]+)\s*x\s*([\d.]+)`)
)

// parseInfo reads `pdfcpu info -j` output, falling back to the plain text
// report older releases print.
func parseInfo(output []byte) (pdfInfo, error) {
	var doc infoJSON
	if err := json.Unmarshal(output, &doc); err == nil && len(doc.Infos) > 0 {
		in := doc.Infos[0]
		if in.PageCount <= 0 || len(in.PageSizes) == 0 {
			return pdfInfo{}, fmt.Errorf("pdfcpu reported no pages")
		}
		return pdfInfo{
			pageCount: in.PageCount,
			first:     toCanvas(in.PageSizes[0].Width, in.PageSizes[0].Height),
			uniform:   len(in.PageSizes) == 1,
		}, nil
	}

	text := string(output)
	count := 0
	for _, re := range pageCountPatterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			if n, err := strconv.Atoi(m[1]); err == nil {
				count = n
				break
			}
		}
	}
	if count <= 0 {
		return pdfInfo{}, fmt.Errorf("could not determine page count from output: %s", text)
	}

	m := pageSizePattern.FindStringSubmatch(text)
	if len(m) < 3 {
		return pdfInfo{}, fmt.Errorf("could not determine page size from output: %s", text)
	}
	w, _ := strconv.ParseFloat(m[1], 64)
	h, _ := strconv.ParseFloat(m[2], 64)

	return pdfInfo{
		pageCount: count,
		first:     toCanvas(w, h),
		uniform:   len(pageSizePattern.FindAllString(text, -1)) == 1,
	}, nil
}

func toCanvas(w, h float64) geometry.Canvas {
	return geometry.Canvas{Width: int(math.Round(w)), Height: int(math.Round(h))}
}
