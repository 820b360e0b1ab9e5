// Package document loads resume files and turns them into raw text.
package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Document is a resume file held in memory. It is immutable once loaded.
type Document struct {
	name string
	ext  string
	data []byte
}

// Open reads the file at path. A read failure is reported as an ExtractionError.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Document: path, Ext: Ext(path), Err: err}
	}

	return &Document{name: path, ext: Ext(path), data: data}, nil
}

// FromBytes wraps an in-memory upload. The extension is derived from name.
func FromBytes(name string, data []byte) *Document {
	cp := make([]byte, len(data))
	copy(cp, data)

	return &Document{name: name, ext: Ext(name), data: cp}
}

// Ext returns the lower-cased extension of name including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func (d *Document) Name() string { return d.name }

func (d *Document) Ext() string { return d.ext }

func (d *Document) Size() int { return len(d.data) }

// Reader returns a fresh reader over the document bytes.
func (d *Document) Reader() *bytes.Reader {
	return bytes.NewReader(d.data)
}
