package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/phambaophuc/doc-watermark/internal/services/processor"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"github.com/phambaophuc/doc-watermark/pkg/utils"
)

// statusFor maps the engine's error kinds to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, http.ErrMissingFile),
		errors.Is(err, errBadRequest),
		errors.Is(err, watermark.ErrInvalidSpec),
		errors.Is(err, watermark.ErrAssetDecode):
		return http.StatusBadRequest
	case errors.Is(err, processor.ErrFileTooLarge),
		errors.Is(err, utils.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, watermark.ErrUnsupportedFormat),
		errors.Is(err, watermark.ErrClassification):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, watermark.ErrConversion):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
