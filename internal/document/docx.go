package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	unidoc "github.com/unidoc/unioffice/document"
)

const (
	docxBody       = "word/document.xml"
	docxProperties = "docProps/app.xml"
)

type docxAppProperties struct {
	Pages int `xml:"Pages"`
}

func extractDOCX(data []byte) (Extracted, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extracted{}, fmt.Errorf("open docx archive: %w", err)
	}

	var body, props *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case docxBody:
			body = f
		case docxProperties:
			props = f
		}
	}

	if body == nil {
		return Extracted{}, errors.New("no word/document.xml found in docx")
	}

	// unioffice refuses to read without a license key; the token reader
	// covers that case and documents unioffice cannot load.
	text, err := readDocxDocument(data)
	if err != nil || strings.TrimSpace(text) == "" {
		if text, err = readDocxBody(body); err != nil {
			return Extracted{}, fmt.Errorf("read %s: %w", docxBody, err)
		}
	}

	pages := 1
	if props != nil {
		if n, err := readDocxPages(props); err == nil && n > 0 {
			pages = n
		}
	}

	return Extracted{Text: text, Pages: pages}, nil
}

// readDocxDocument reads the paragraphs and runs through unioffice.
func readDocxDocument(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("unioffice: %v", r)
		}
	}()

	doc, err := unidoc.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var paragraphs [][]string
	for _, para := range doc.Paragraphs() {
		var runs []string
		for _, run := range para.Runs() {
			runs = append(runs, run.Text())
		}
		paragraphs = append(paragraphs, runs)
	}

	return joinParagraphs(paragraphs), nil
}

// joinParagraphs writes each paragraph's runs on their own line.
func joinParagraphs(paragraphs [][]string) string {
	var b strings.Builder
	for _, runs := range paragraphs {
		for _, run := range runs {
			b.WriteString(run)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// readDocxBody walks the WordprocessingML token stream: w:t carries text,
// w:p ends a line, w:tab and w:br/w:cr are whitespace.
func readDocxBody(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)

	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}

	return b.String(), nil
}

func readDocxPages(f *zip.File) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	var props docxAppProperties
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return 0, err
	}

	return props.Pages, nil
}
