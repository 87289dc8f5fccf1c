// Package normalize converts legacy document formats to the canonical format a
// stamping strategy works on, and back again when the caller asks for it.
package normalize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/classify"
	"go.uber.org/zap"
)

var ErrConversion = errors.New("format conversion failed")

// ConversionError reports a failed conversion between two formats.
type ConversionError struct {
	From classify.Format
	To   classify.Format
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to convert %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("failed to convert %s to %s: %v", e.From, e.To, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// Converter turns a document from one format into another.
type Converter interface {
	Convert(ctx context.Context, data []byte, from, to classify.Format) ([]byte, error)
}

var forward = map[classify.Format]classify.Format{
	classify.Xls:  classify.Xlsx,
	classify.Doc:  classify.Docx,
	classify.Ppt:  classify.Pptx,
	classify.HTML: classify.PDF,
	classify.Rtf:  classify.Docx,
}

var backward = map[classify.Format]classify.Format{
	classify.Xlsx: classify.Xls,
	classify.Docx: classify.Doc,
	classify.Pptx: classify.Ppt,
}

// Canonical returns the format f is normalized to, or f itself.
func Canonical(f classify.Format) classify.Format {
	if to, ok := forward[f]; ok {
		return to
	}
	return f
}

// Normalized holds the bytes a strategy stamps.
type Normalized struct {
	Data      []byte
	Format    classify.Format
	Original  classify.Format
	converted bool
}

// Converted reports whether Data came from the converter.
func (n *Normalized) Converted() bool { return n.converted }

// Close drops the converted buffer. Safe to call more than once.
func (n *Normalized) Close() error {
	if n == nil {
		return nil
	}
	if n.converted {
		n.Data = nil
	}
	return nil
}

type Normalizer struct {
	converter Converter
	logger    *zap.Logger
}

// New returns a Normalizer. A nil converter makes every real conversion fail.
func New(converter Converter, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{converter: converter, logger: logger}
}

// Normalize brings data from its detected format to target. Matching formats
// return the input slice untouched.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, from, target classify.Format) (*Normalized, error) {
	if from == target {
		return &Normalized{Data: data, Format: from, Original: from}, nil
	}

	if forward[from] != target {
		return nil, &ConversionError{From: from, To: target, Err: errors.New("unsupported conversion pair")}
	}

	out, err := n.convert(ctx, data, from, target)
	if err != nil {
		return nil, err
	}

	return &Normalized{Data: out, Format: target, Original: from, converted: true}, nil
}

// Denormalize reverses a normalization for legacy office formats.
func (n *Normalizer) Denormalize(ctx context.Context, data []byte, canonical, original classify.Format) ([]byte, error) {
	if canonical == original {
		return data, nil
	}
	if backward[canonical] != original {
		return nil, &ConversionError{From: canonical, To: original, Err: errors.New("unsupported conversion pair")}
	}
	return n.convert(ctx, data, canonical, original)
}

func (n *Normalizer) convert(ctx context.Context, data []byte, from, to classify.Format) ([]byte, error) {
	if n.converter == nil {
		return nil, &ConversionError{From: from, To: to, Err: errors.New("no converter configured")}
	}

	start := time.Now()
	out, err := n.converter.Convert(ctx, data, from, to)
	if err != nil {
		n.logger.Error("Conversion failed",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err))
		return nil, &ConversionError{From: from, To: to, Err: err}
	}

	got, err := classify.Classify(out)
	if err != nil {
		return nil, &ConversionError{From: from, To: to, Err: err}
	}
	if got != to {
		return nil, &ConversionError{From: from, To: to, Err: fmt.Errorf("converter produced %s", got)}
	}

	n.logger.Debug("Document converted",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Int("input_size", len(data)),
		zap.Int("output_size", len(out)),
		zap.Duration("duration", time.Since(start)))

	return out, nil
}
