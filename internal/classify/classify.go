// Package classify detects what a document really is from its bytes, never
// from its file name.
package classify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var ErrClassification = errors.New("failed to classify document")

// mimeFormats is checked in order against the detected type and each of its
// parents.
var mimeFormats = []struct {
	mime   string
	format Format
}{
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", Docx},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Xlsx},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", Pptx},
	{"application/msword", Doc},
	{"application/vnd.ms-excel", Xls},
	{"application/vnd.ms-powerpoint", Ppt},
	{"application/pdf", PDF},
	{"text/rtf", Rtf},
	{"text/html", HTML},
	{"image/png", Image},
	{"image/jpeg", Image},
	{"image/gif", Image},
	{"image/bmp", Image},
	{"image/tiff", Image},
	{"image/webp", Image},
	{"text/plain", PlainText},
}

// Classify sniffs data and returns its format. Unknown content is Other, not
// an error; only unreadable input fails.
func Classify(data []byte) (Format, error) {
	if len(data) == 0 {
		return Other, fmt.Errorf("%w: empty input", ErrClassification)
	}

	if bytes.HasPrefix(data, oleSignature) {
		if f, ok := oleFormat(data); ok {
			return f, nil
		}
	}

	mt := mimetype.Detect(data)
	if isZip(mt) {
		if f, ok := ooxmlFormat(data); ok {
			return f, nil
		}
	}
	return fromMIME(mt), nil
}

// ClassifyReader reads r to the end and classifies the bytes.
func ClassifyReader(r io.Reader) (Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Other, fmt.Errorf("%w: %w", ErrClassification, err)
	}
	return Classify(data)
}

// ClassifyFile classifies the file at path. Directories are rejected.
func ClassifyFile(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Other, fmt.Errorf("%w: %w", ErrClassification, err)
	}
	if info.IsDir() {
		return Other, fmt.Errorf("%w: %s is a directory", ErrClassification, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Other, fmt.Errorf("%w: %w", ErrClassification, err)
	}
	defer f.Close()

	return ClassifyReader(f)
}

// DetectMIME returns the sniffed media type, without parameters.
func DetectMIME(data []byte) string {
	base, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return base
}

func fromMIME(mt *mimetype.MIME) Format {
	for m := mt; m != nil; m = m.Parent() {
		for _, e := range mimeFormats {
			if m.Is(e.mime) {
				return e.format
			}
		}
	}
	return Other
}
