package convert

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/classify"
	"github.com/phambaophuc/doc-watermark/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeSoffice copies the input into --outdir under the extension named by
// --convert-to, which is all the converter relies on.
const fakeSoffice = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --convert-to) ext="${2%%:*}"; shift 2 ;;
    --outdir) out="$2"; shift 2 ;;
    -*) shift ;;
    *) in="$1"; shift ;;
  esac
done
mkdir -p "$out"
base=$(basename "$in")
cp "$in" "$out/${base%.*}.$ext"
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts need a unix shell")
	}
	path := filepath.Join(t.TempDir(), "soffice")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConvert(t *testing.T) {
	tmp := t.TempDir()
	lo := NewLibreOffice(zaptest.NewLogger(t),
		WithBinary(writeScript(t, fakeSoffice)),
		WithTempDir(tmp))

	data := fixtures.Docx()
	out, err := lo.Convert(context.Background(), data, classify.Doc, classify.Docx)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	requireEmptyDir(t, tmp)
}

func TestConvertMissingBinary(t *testing.T) {
	tmp := t.TempDir()
	lo := NewLibreOffice(nil,
		WithBinary(filepath.Join(t.TempDir(), "no-such-soffice")),
		WithTempDir(tmp))

	_, err := lo.Convert(context.Background(), fixtures.Xls(), classify.Xls, classify.Xlsx)
	require.Error(t, err)
	requireEmptyDir(t, tmp)
}

func TestConvertNoOutput(t *testing.T) {
	tmp := t.TempDir()
	lo := NewLibreOffice(nil,
		WithBinary(writeScript(t, "#!/bin/sh\nexit 0\n")),
		WithTempDir(tmp))

	_, err := lo.Convert(context.Background(), fixtures.Ppt(), classify.Ppt, classify.Pptx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no output")
	requireEmptyDir(t, tmp)
}

func TestConvertTimeout(t *testing.T) {
	tmp := t.TempDir()
	lo := NewLibreOffice(nil,
		WithBinary(writeScript(t, "#!/bin/sh\nexec sleep 5\n")),
		WithTempDir(tmp),
		WithTimeout(100*time.Millisecond))

	_, err := lo.Convert(context.Background(), fixtures.HTML(), classify.HTML, classify.PDF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	requireEmptyDir(t, tmp)
}

func TestConvertUnsupportedPair(t *testing.T) {
	lo := NewLibreOffice(nil)
	_, err := lo.Convert(context.Background(), fixtures.PDF(), classify.PDF, classify.Docx)
	require.Error(t, err)
	assert.False(t, Supports(classify.PDF, classify.Docx))
	assert.True(t, Supports(classify.Rtf, classify.Docx))
}
