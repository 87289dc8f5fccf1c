package watermark

import (
	"errors"
	"fmt"

	"github.com/phambaophuc/doc-watermark/internal/asset"
	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/normalize"
)

var (
	ErrInvalidSpec       = errors.New("invalid watermark spec")
	ErrAssetDecode       = asset.ErrDecode
	ErrClassification    = classify.ErrClassification
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrConversion        = normalize.ErrConversion
	// ErrAdapter wraps failures reported by a document adapter, such as a
	// corrupt page tree or a missing external tool.
	ErrAdapter = errors.New("document adapter failed")
)

// UnsupportedFormatError is returned when no registered strategy claims a
// document.
type UnsupportedFormatError struct {
	Format classify.Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s (%s)", e.Format, e.Format.Family())
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

type ConversionError = normalize.ConversionError

// classifyError maps a synthesis error onto the engine's error kinds.
func classifyError(err error) error {
	switch {
	case errors.Is(err, asset.ErrInvalidSource):
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	case errors.Is(err, ErrAssetDecode):
		return err
	}
	return fmt.Errorf("%w: %w", ErrAssetDecode, err)
}
