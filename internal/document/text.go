package document

import (
	"errors"
	"strings"
	"unicode/utf8"
)

func extractText(data []byte) (Extracted, error) {
	if !utf8.Valid(data) {
		return Extracted{}, errors.New("text file is not valid utf-8")
	}

	text := string(data)

	return Extracted{Text: text, Pages: strings.Count(text, "\f") + 1}, nil
}
