// Package fixtures builds small but structurally valid documents for tests.
package fixtures

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"unicode/utf16"
)

const (
	sectorSize = 512
	endOfChain = 0xFFFFFFFE
	fatSector  = 0xFFFFFFFD
	freeSector = 0xFFFFFFFF
	noStream   = 0xFFFFFFFF
)

// OLE returns a version 3 compound file holding one empty stream named
// stream. Sector 0 is the FAT and sector 1 the directory.
func OLE(stream string) []byte {
	buf := make([]byte, 3*sectorSize)
	le := binary.LittleEndian

	// header
	copy(buf, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le.PutUint16(buf[24:], 0x003E)
	le.PutUint16(buf[26:], 0x0003)
	le.PutUint16(buf[28:], 0xFFFE)
	le.PutUint16(buf[30:], 0x0009)
	le.PutUint16(buf[32:], 0x0006)
	le.PutUint32(buf[44:], 1)
	le.PutUint32(buf[48:], 1)
	le.PutUint32(buf[56:], 0x1000)
	le.PutUint32(buf[60:], endOfChain)
	le.PutUint32(buf[68:], endOfChain)
	le.PutUint32(buf[76:], 0)
	for off := 80; off < sectorSize; off += 4 {
		le.PutUint32(buf[off:], freeSector)
	}

	// FAT
	fat := buf[sectorSize : 2*sectorSize]
	le.PutUint32(fat[0:], fatSector)
	le.PutUint32(fat[4:], endOfChain)
	for off := 8; off < sectorSize; off += 4 {
		le.PutUint32(fat[off:], freeSector)
	}

	// directory
	dir := buf[2*sectorSize:]
	putEntry(dir[0:128], "Root Entry", 5, 1)
	putEntry(dir[128:256], stream, 2, noStream)
	for off := 256; off < sectorSize; off += 128 {
		le.PutUint32(dir[off+68:], noStream)
		le.PutUint32(dir[off+72:], noStream)
		le.PutUint32(dir[off+76:], noStream)
	}

	return buf
}

func putEntry(b []byte, name string, kind byte, child uint32) {
	le := binary.LittleEndian
	units := utf16.Encode([]rune(name))
	for i, u := range units {
		le.PutUint16(b[i*2:], u)
	}
	le.PutUint16(b[64:], uint16((len(units)+1)*2))
	b[66] = kind
	b[67] = 1
	le.PutUint32(b[68:], noStream)
	le.PutUint32(b[72:], noStream)
	le.PutUint32(b[76:], child)
	le.PutUint32(b[116:], endOfChain)
}

func Xls() []byte { return OLE("Workbook") }
func Doc() []byte { return OLE("WordDocument") }
func Ppt() []byte { return OLE("PowerPoint Document") }

// OOXML returns a zip container whose second entry is part, the layout
// office suites write.
func OOXML(part string) []byte {
	return ooxml(
		zipEntry{name: "[Content_Types].xml", body: []byte(contentTypes)},
		zipEntry{name: part, body: []byte(xmlStub)},
		zipEntry{name: "_rels/.rels", body: []byte(`<?xml version="1.0" encoding="UTF-8"?><Relationships/>`)},
	)
}

// OOXMLWithThumbnail places a stored thumbnail of padding bytes ahead of
// part, pushing it past the head of the file.
func OOXMLWithThumbnail(part string, padding int) []byte {
	return ooxml(
		zipEntry{name: "[Content_Types].xml", body: []byte(contentTypes)},
		zipEntry{name: "_rels/.rels", body: []byte(`<?xml version="1.0" encoding="UTF-8"?><Relationships/>`)},
		zipEntry{name: "docProps/thumbnail.jpeg", body: bytes.Repeat([]byte{0xA5}, padding), store: true},
		zipEntry{name: part, body: []byte(xmlStub)},
	)
}

const (
	contentTypes = `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`
	xmlStub      = `<?xml version="1.0" encoding="UTF-8"?><root/>`
)

type zipEntry struct {
	name  string
	body  []byte
	store bool
}

func ooxml(entries ...zipEntry) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		method := zip.Deflate
		if e.store {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: method})
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(e.body); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func Docx() []byte { return OOXML("word/document.xml") }
func Xlsx() []byte { return OOXML("xl/workbook.xml") }
func Pptx() []byte { return OOXML("ppt/presentation.xml") }

func PDF() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

func HTML() []byte {
	return []byte("<!DOCTYPE html>\n<html><head><title>report</title></head><body><p>quarterly report</p></body></html>\n")
}

func RTF() []byte {
	return []byte(`{\rtf1\ansi\deff0 {\fonttbl {\f0 Times;}}\f0 quarterly report\par}`)
}

func Text() []byte {
	return []byte("quarterly report\nline two\n")
}

// Binary returns bytes no sniffer recognizes.
func Binary() []byte {
	b := make([]byte, 1024)
	for i := range b {
		b[i] = byte(i*131 + 7)
	}
	b[0], b[1], b[2], b[3] = 0x13, 0x37, 0x00, 0xAB
	return b
}

// Canvas returns a w x h image filled with c.
func Canvas(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func PNG(w, h int, c color.Color) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Canvas(w, h, c)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func JPEG(w, h int, c color.Color) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, Canvas(w, h, c), &jpeg.Options{Quality: 95}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
