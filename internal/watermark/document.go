package watermark

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/phambaophuc/doc-watermark/internal/classify"
)

// Document is an input document. Its bytes are never modified and its format
// is detected once, on first use.
type Document struct {
	data []byte
	name string

	once   sync.Once
	format classify.Format
	err    error
}

func NewDocument(data []byte) *Document {
	return &Document{data: data}
}

// NewDocumentFromFile reads the document at path. The file name is kept for
// logging only; detection looks at content.
func NewDocumentFromFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrClassification, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	doc := NewDocument(data)
	doc.name = filepath.Base(path)
	return doc, nil
}

func (d *Document) Bytes() []byte { return d.data }
func (d *Document) Name() string  { return d.name }
func (d *Document) Size() int     { return len(d.data) }

// Format returns the detected format.
func (d *Document) Format() (classify.Format, error) {
	d.once.Do(func() {
		d.format, d.err = classify.Classify(d.data)
	})
	return d.format, d.err
}
