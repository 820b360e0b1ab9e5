package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseModel is the default general model backed by prose's averaged
// perceptron tagger and entity extractor. The model weights are bundled with
// the library, so a zero value is ready to use.
type ProseModel struct{}

func NewProseModel() *ProseModel {
	return &ProseModel{}
}

func (m *ProseModel) Annotate(text string) (*Annotated, error) {
	out := &Annotated{Text: text}
	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("annotate text: %w", err)
	}

	for _, tok := range doc.Tokens() {
		out.Tokens = append(out.Tokens, Token{Text: tok.Text, Tag: tok.Tag, Label: tok.Label})
	}

	out.Entities = entitySpans(out.Tokens)
	out.NounChunks = NounChunks(out.Tokens)

	return out, nil
}

// entitySpans groups consecutive tokens carrying the same IOB entity label.
func entitySpans(tokens []Token) []Span {
	var spans []Span
	start := -1
	label := ""

	flush := func(end int) {
		if start >= 0 {
			spans = append(spans, Span{Start: start, End: end, Text: joinTokens(tokens[start:end]), Label: label})
		}
		start = -1
		label = ""
	}

	for i, tok := range tokens {
		prefix, kind := splitIOB(tok.Label)
		switch {
		case kind == "":
			flush(i)
		case prefix == "B" || kind != label:
			flush(i)
			start = i
			label = kind
		}
	}
	flush(len(tokens))

	return spans
}

func splitIOB(label string) (string, string) {
	if label == "" || label == "O" {
		return "", ""
	}
	prefix, kind, ok := strings.Cut(label, "-")
	if !ok {
		return "", label
	}
	return prefix, kind
}
