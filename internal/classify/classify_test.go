package classify

import (
	"archive/zip"
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/phambaophuc/doc-watermark/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	test := []struct {
		name   string
		data   []byte
		format Format
		family Family
	}{
		{"docx", fixtures.Docx(), Docx, FamilyWord},
		{"xlsx", fixtures.Xlsx(), Xlsx, FamilyExcel},
		{"pptx", fixtures.Pptx(), Pptx, FamilyPowerPoint},
		{"doc", fixtures.Doc(), Doc, FamilyWord},
		{"xls", fixtures.Xls(), Xls, FamilyExcel},
		{"ppt", fixtures.Ppt(), Ppt, FamilyPowerPoint},
		{"pdf", fixtures.PDF(), PDF, FamilyPdf},
		{"html", fixtures.HTML(), HTML, FamilyHTML},
		{"rtf", fixtures.RTF(), Rtf, FamilyRtf},
		{"png", fixtures.PNG(8, 8, color.White), Image, FamilyImage},
		{"jpeg", fixtures.JPEG(8, 8, color.White), Image, FamilyImage},
		{"plain text", fixtures.Text(), PlainText, FamilyPlainText},
		{"unknown binary", fixtures.Binary(), Other, FamilyOther},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got)
			assert.Equal(t, tt.family, got.Family())
		})
	}
}

func TestClassifyOOXMLPastSniffWindow(t *testing.T) {
	test := []struct {
		part   string
		format Format
	}{
		{"word/document.xml", Docx},
		{"xl/workbook.xml", Xlsx},
		{"ppt/presentation.xml", Pptx},
	}
	for _, tt := range test {
		t.Run(tt.format.String(), func(t *testing.T) {
			data := fixtures.OOXMLWithThumbnail(tt.part, 8<<10)
			require.Equal(t, "application/zip", DetectMIME(data))

			got, err := Classify(data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, got)
		})
	}
}

func TestClassifyPlainZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes/readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not an office document"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got, err := Classify(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, Other, got)
}

func TestClassifyEmpty(t *testing.T) {
	_, err := Classify(nil)
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassifyUnknownCompoundFile(t *testing.T) {
	got, err := Classify(fixtures.OLE("Contents"))
	require.NoError(t, err)
	assert.NotEqual(t, Doc, got)
	assert.NotEqual(t, Xls, got)
	assert.NotEqual(t, Ppt, got)
}

func TestClassifyTruncatedCompoundFile(t *testing.T) {
	data := fixtures.Doc()[:600]
	assert.NotPanics(t, func() {
		_, err := Classify(data)
		assert.NoError(t, err)
	})
}

func TestClassifyIgnoresFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, fixtures.Xlsx(), 0o600))

	got, err := ClassifyFile(path)
	require.NoError(t, err)
	assert.Equal(t, Xlsx, got)
}

func TestClassifyFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ClassifyFile(dir)
	assert.ErrorIs(t, err, ErrClassification)

	_, err = ClassifyFile(filepath.Join(dir, "missing.docx"))
	assert.ErrorIs(t, err, ErrClassification)
}

func TestFormatPredicates(t *testing.T) {
	assert.True(t, Rtf.IsWord())
	assert.True(t, Doc.IsWord())
	assert.False(t, Rtf.IsLegacy())
	assert.True(t, Xls.IsLegacy())
	assert.True(t, Ppt.IsPowerPoint())
	assert.False(t, HTML.IsPdf())
	assert.Equal(t, "", Image.Extension())
	assert.Equal(t, "docx", Docx.Extension())
	assert.Equal(t, "application/pdf", PDF.MIME())
}

func TestParseFormat(t *testing.T) {
	test := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"xlsx", Xlsx, true},
		{".DOC", Doc, true},
		{" htm ", HTML, true},
		{"txt", PlainText, true},
		{"text", PlainText, true},
		{"odt", Other, false},
	}
	for _, tt := range test {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMIME(fixtures.PDF()))
	assert.Equal(t, "text/plain", DetectMIME(fixtures.Text()))
}
