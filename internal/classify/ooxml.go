package classify

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ooxmlParts maps the top-level part directory of an office open XML package
// to its format.
var ooxmlParts = map[string]Format{
	"word/": Docx,
	"xl/":   Xlsx,
	"ppt/":  Pptx,
}

func isZip(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// ooxmlFormat reads the central directory of a zip container looking for the
// part directory an office application writes. The sniffer only sees the
// head of the file, so packages with a large leading part need this.
func ooxmlFormat(data []byte) (Format, bool) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Other, false
	}

	for _, f := range zr.File {
		for prefix, format := range ooxmlParts {
			if strings.HasPrefix(f.Name, prefix) {
				return format, true
			}
		}
	}
	return Other, false
}
