package document

import (
	"sort"
	"strings"
)

// Extracted is the output of the text extraction boundary.
type Extracted struct {
	Text  string
	Pages int
}

// FormatFunc turns raw file bytes of one format into text.
type FormatFunc func(data []byte) (Extracted, error)

// Extractor dispatches documents to a format reader by extension.
type Extractor struct {
	formats map[string]FormatFunc
}

// NewExtractor returns an extractor that handles pdf, docx and plain text.
func NewExtractor() *Extractor {
	e := &Extractor{formats: make(map[string]FormatFunc)}
	e.Register(".pdf", extractPDF)
	e.Register(".docx", extractDOCX)
	e.Register(".txt", extractText)
	e.Register(".text", extractText)

	return e
}

// Register adds or replaces the reader for ext.
func (e *Extractor) Register(ext string, fn FormatFunc) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	e.formats[ext] = fn
}

func (e *Extractor) Supports(ext string) bool {
	_, ok := e.formats[strings.ToLower(ext)]
	return ok
}

// Extensions lists the supported extensions in sorted order.
func (e *Extractor) Extensions() []string {
	exts := make([]string, 0, len(e.formats))
	for ext := range e.formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	return exts
}

// Extract returns the cleaned raw text and page count of doc.
func (e *Extractor) Extract(doc *Document) (Extracted, error) {
	fn, ok := e.formats[doc.Ext()]
	if !ok {
		return Extracted{}, &ExtractionError{Document: doc.Name(), Ext: doc.Ext(), Err: ErrUnsupportedFormat}
	}

	out, err := fn(doc.data)
	if err != nil {
		return Extracted{}, &ExtractionError{Document: doc.Name(), Ext: doc.Ext(), Err: err}
	}

	out.Text = CleanText(out.Text)
	if out.Pages < 0 {
		out.Pages = 0
	}

	return out, nil
}
