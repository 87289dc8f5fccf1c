// Package convert runs office format conversions through a headless
// LibreOffice install.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/classify"
	"go.uber.org/zap"
)

const (
	DefaultBinary  = "soffice"
	DefaultTimeout = 2 * time.Minute
)

type pair struct{ from, to classify.Format }

// filters holds the export filter soffice needs for each supported pair.
var filters = map[pair]string{
	{classify.Xls, classify.Xlsx}: "xlsx:Calc MS Excel 2007 XML",
	{classify.Xlsx, classify.Xls}: "xls:MS Excel 97",
	{classify.Doc, classify.Docx}: "docx:MS Word 2007 XML",
	{classify.Docx, classify.Doc}: "doc:MS Word 97",
	{classify.Ppt, classify.Pptx}: "pptx:Impress MS PowerPoint 2007 XML",
	{classify.Pptx, classify.Ppt}: "ppt:MS PowerPoint 97",
	{classify.HTML, classify.PDF}: "pdf:writer_web_pdf_Export",
	{classify.Rtf, classify.Docx}: "docx:MS Word 2007 XML",
}

// LibreOffice converts documents with the soffice command line.
type LibreOffice struct {
	binary  string
	tempDir string
	timeout time.Duration
	logger  *zap.Logger
}

type Option func(*LibreOffice)

func WithBinary(path string) Option {
	return func(l *LibreOffice) {
		if path != "" {
			l.binary = path
		}
	}
}

// WithTempDir sets where per-call work directories are created.
func WithTempDir(dir string) Option {
	return func(l *LibreOffice) { l.tempDir = dir }
}

func WithTimeout(d time.Duration) Option {
	return func(l *LibreOffice) {
		if d > 0 {
			l.timeout = d
		}
	}
}

func NewLibreOffice(logger *zap.Logger, opts ...Option) *LibreOffice {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &LibreOffice{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Supports reports whether the from/to pair has an export filter.
func Supports(from, to classify.Format) bool {
	_, ok := filters[pair{from, to}]
	return ok
}

// Convert writes data into a fresh work directory, runs soffice on it and
// returns the converted file. The directory is removed before returning.
func (l *LibreOffice) Convert(ctx context.Context, data []byte, from, to classify.Format) ([]byte, error) {
	filter, ok := filters[pair{from, to}]
	if !ok {
		return nil, fmt.Errorf("no export filter for %s to %s", from, to)
	}

	workDir, err := os.MkdirTemp(l.tempDir, "convert-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	input := filepath.Join(workDir, "input."+from.Extension())
	if err := os.WriteFile(input, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write input: %w", err)
	}
	outDir := filepath.Join(workDir, "out")

	// A private profile lets concurrent conversions run side by side.
	args := []string{
		"--headless",
		"--norestore",
		"-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(workDir, "profile")),
		"--convert-to", filter,
		"--outdir", outDir,
		input,
	}

	start := time.Now()
	output, err := l.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	result, err := os.ReadFile(filepath.Join(outDir, "input."+to.Extension()))
	if err != nil {
		return nil, fmt.Errorf("soffice produced no output: %w\noutput: %s", err, output)
	}

	l.logger.Info("Converted document",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

func (l *LibreOffice) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, l.binary, args...)
	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("soffice timed out after %v", l.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("soffice convert: %w\noutput: %s", err, output)
	}
	return output, nil
}
