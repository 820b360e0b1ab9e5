package document

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is wrapped by ExtractionError when no extractor is
// registered for the document extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ExtractionError reports a document that could not be turned into text.
type ExtractionError struct {
	Document string
	Ext      string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("extract %s: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("extract %s (%s): %v", e.Document, e.Ext, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
