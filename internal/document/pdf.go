package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal gap, relative to the font size, above which two
// glyph runs on a row belong to different words.
const wordGap = 0.2

func extractPDF(data []byte) (out Extracted, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			out = Extracted{}
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extracted{}, fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()

	var text strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := pageText(page)
		if err != nil {
			return Extracted{}, fmt.Errorf("read page %d: %w", i, err)
		}

		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return Extracted{Text: text.String(), Pages: pages}, nil
}

// pageText keeps one output line per text row, falling back to the plain
// text stream when the page has no positioned rows.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(joinRow(row.Content))
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	return page.GetPlainText(nil)
}

// joinRow concatenates the glyph runs of a row. Runs positioned apart
// without a space glyph get a space between them.
func joinRow(content []pdf.Text) string {
	var b strings.Builder
	for i, t := range content {
		if i > 0 && needsSpace(content[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
	}
	return b.String()
}

func needsSpace(prev, next pdf.Text) bool {
	if prev.S == "" || next.S == "" || strings.HasSuffix(prev.S, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	size := prev.FontSize
	if size <= 0 {
		size = 1
	}
	return next.X-(prev.X+prev.W) > size*wordGap
}
