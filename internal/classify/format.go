package classify

import "strings"

// Format is the concrete container a document was detected as.
type Format int

const (
	Other Format = iota
	Doc
	Docx
	Rtf
	Xls
	Xlsx
	Ppt
	Pptx
	PDF
	HTML
	Image
	PlainText
)

var formatNames = map[Format]string{
	Other:     "other",
	Doc:       "doc",
	Docx:      "docx",
	Rtf:       "rtf",
	Xls:       "xls",
	Xlsx:      "xlsx",
	Ppt:       "ppt",
	Pptx:      "pptx",
	PDF:       "pdf",
	HTML:      "html",
	Image:     "image",
	PlainText: "txt",
}

var formatMIMEs = map[Format]string{
	Other:     "application/octet-stream",
	Doc:       "application/msword",
	Docx:      "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	Rtf:       "application/rtf",
	Xls:       "application/vnd.ms-excel",
	Xlsx:      "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	Ppt:       "application/vnd.ms-powerpoint",
	Pptx:      "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	PDF:       "application/pdf",
	HTML:      "text/html",
	Image:     "image/*",
	PlainText: "text/plain",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return formatNames[Other]
}

// Extension is the file extension without the dot. Image has none since the
// concrete raster format is decided by the image itself.
func (f Format) Extension() string {
	if f == Image || f == Other {
		return ""
	}
	return f.String()
}

func (f Format) MIME() string {
	if m, ok := formatMIMEs[f]; ok {
		return m
	}
	return formatMIMEs[Other]
}

// ParseFormat maps a name such as "xlsx" or ".doc" back to a Format.
func ParseFormat(s string) (Format, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	switch s {
	case "htm":
		return HTML, true
	case "text":
		return PlainText, true
	}
	for f, name := range formatNames {
		if name == s {
			return f, true
		}
	}
	return Other, false
}

func (f Format) Family() Family {
	switch f {
	case Doc, Docx:
		return FamilyWord
	case Rtf:
		return FamilyRtf
	case Xls, Xlsx:
		return FamilyExcel
	case Ppt, Pptx:
		return FamilyPowerPoint
	case PDF:
		return FamilyPdf
	case HTML:
		return FamilyHTML
	case Image:
		return FamilyImage
	case PlainText:
		return FamilyPlainText
	}
	return FamilyOther
}

// IsLegacy reports the binary office formats that have a modern counterpart.
func (f Format) IsLegacy() bool {
	return f == Doc || f == Xls || f == Ppt
}

// IsWord covers everything a word processor stamps: docx, doc and rtf.
func (f Format) IsWord() bool       { return f == Docx || f == Doc || f == Rtf }
func (f Format) IsExcel() bool      { return f == Xlsx || f == Xls }
func (f Format) IsPowerPoint() bool { return f == Pptx || f == Ppt }
func (f Format) IsPdf() bool        { return f == PDF }
func (f Format) IsHTML() bool       { return f == HTML }
func (f Format) IsRtf() bool        { return f == Rtf }
func (f Format) IsImage() bool      { return f == Image }
func (f Format) IsPlainText() bool  { return f == PlainText }

// Family is the coarse media family a Format belongs to.
type Family int

const (
	FamilyOther Family = iota
	FamilyWord
	FamilyExcel
	FamilyPowerPoint
	FamilyPdf
	FamilyHTML
	FamilyRtf
	FamilyImage
	FamilyPlainText
)

func (f Family) String() string {
	switch f {
	case FamilyWord:
		return "Word"
	case FamilyExcel:
		return "Excel"
	case FamilyPowerPoint:
		return "PowerPoint"
	case FamilyPdf:
		return "Pdf"
	case FamilyHTML:
		return "Html"
	case FamilyRtf:
		return "Rtf"
	case FamilyImage:
		return "Image"
	case FamilyPlainText:
		return "PlainText"
	}
	return "Other"
}
