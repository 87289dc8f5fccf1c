package processor

import (
	"errors"
	"fmt"

	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
)

var ErrFileTooLarge = errors.New("file too large")

// ValidateDocument checks size and that the bytes look like a document some
// strategy could handle. It does not consult the registry.
func ValidateDocument(data []byte, maxSize int64) (classify.Format, error) {
	if maxSize > 0 && int64(len(data)) > maxSize {
		return classify.Other, fmt.Errorf("%w: size %d exceeds maximum allowed size %d",
			ErrFileTooLarge, len(data), maxSize)
	}

	format, err := classify.Classify(data)
	if err != nil {
		return classify.Other, err
	}
	if format == classify.Other || format == classify.PlainText {
		return format, &watermark.UnsupportedFormatError{Format: format}
	}
	return format, nil
}
