// Package nlp wraps the general-purpose language model and the token
// pattern matcher used by the field extractors.
package nlp

import "strings"

// Token is one word of annotated text.
type Token struct {
	Text  string
	Tag   string
	Label string
}

// Span is a contiguous run of tokens, End exclusive.
type Span struct {
	Start int
	End   int
	Text  string
	Label string
}

// Annotated is the general model output for one document.
type Annotated struct {
	Text       string
	Tokens     []Token
	Entities   []Span
	NounChunks []Span
}

// Model annotates normalized text with tokens, tags and entities.
type Model interface {
	Annotate(text string) (*Annotated, error)
}

// IsNoun reports whether tag is a Penn Treebank noun tag.
func IsNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// IsProperNoun reports whether tag is NNP or NNPS.
func IsProperNoun(tag string) bool {
	return strings.HasPrefix(tag, "NNP")
}

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}
