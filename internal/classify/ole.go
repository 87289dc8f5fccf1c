package classify

import (
	"bytes"

	"github.com/richardlehane/mscfb"
)

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// oleStreams maps the stream each legacy office application writes to its
// format.
var oleStreams = map[string]Format{
	"WordDocument":        Doc,
	"Workbook":            Xls,
	"Book":                Xls,
	"PowerPoint Document": Ppt,
}

// oleFormat walks the directory of a compound file looking for a stream that
// identifies the application that wrote it.
func oleFormat(data []byte) (f Format, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f, ok = Other, false
		}
	}()

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return Other, false
	}

	for {
		entry, err := doc.Next()
		if err != nil {
			return Other, false
		}
		if f, ok := oleStreams[entry.Name]; ok {
			return f, true
		}
	}
}
