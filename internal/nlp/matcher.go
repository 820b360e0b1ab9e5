package nlp

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"
)

// Op is the quantifier of a token pattern.
type Op int

const (
	One Op = iota
	OneOrMore
	ZeroOrOne
)

// TokenPattern describes a single token position. An empty Tags list
// accepts any tag; Title additionally requires an upper-case first letter.
type TokenPattern struct {
	Tags  []string
	Title bool
	Op    Op
}

// Pattern is a labelled token sequence.
type Pattern struct {
	Label  string
	Tokens []TokenPattern
}

// Match is one full pattern match over a token stream.
type Match struct {
	Label string
	Start int
	End   int
	Text  string
}

// Matcher finds the first full match of its registered patterns. The
// earliest start wins; among patterns matching at the same start the one
// registered first wins.
type Matcher struct {
	patterns []Pattern
	window   int
}

// NewMatcher returns a matcher whose matches must start within the first
// window tokens. A window of 0 or less means the whole stream.
func NewMatcher(window int) *Matcher {
	return &Matcher{window: window}
}

// NameMatcher returns the matcher used for person names: two consecutive
// proper nouns.
func NameMatcher(window int) *Matcher {
	m := NewMatcher(window)
	// the pattern is static and always valid
	_ = m.Add(Pattern{Label: "NAME", Tokens: []TokenPattern{
		{Tags: []string{"NNP"}},
		{Tags: []string{"NNP"}},
	}})
	return m
}

func (m *Matcher) Add(patterns ...Pattern) error {
	for _, p := range patterns {
		if len(p.Tokens) == 0 {
			return fmt.Errorf("pattern %q has no tokens", p.Label)
		}
		m.patterns = append(m.patterns, p)
	}
	return nil
}

func (m *Matcher) Len() int { return len(m.patterns) }

// FindFirst returns the first match in tokens.
func (m *Matcher) FindFirst(tokens []Token) (Match, bool) {
	limit := len(tokens)
	if m.window > 0 && m.window < limit {
		limit = m.window
	}

	for start := 0; start < limit; start++ {
		for _, p := range m.patterns {
			end, ok := matchAt(p.Tokens, tokens, start)
			if !ok || end == start {
				continue
			}
			return Match{
				Label: p.Label,
				Start: start,
				End:   end,
				Text:  joinTokens(tokens[start:end]),
			}, true
		}
	}

	return Match{}, false
}

// matchAt reports the end of the longest match of pattern starting at pos.
func matchAt(pattern []TokenPattern, tokens []Token, pos int) (int, bool) {
	if len(pattern) == 0 {
		return pos, true
	}

	head, rest := pattern[0], pattern[1:]
	switch head.Op {
	case ZeroOrOne:
		if pos < len(tokens) && head.accepts(tokens[pos]) {
			if end, ok := matchAt(rest, tokens, pos+1); ok {
				return end, true
			}
		}
		return matchAt(rest, tokens, pos)
	case OneOrMore:
		n := 0
		for pos+n < len(tokens) && head.accepts(tokens[pos+n]) {
			n++
		}
		for ; n >= 1; n-- {
			if end, ok := matchAt(rest, tokens, pos+n); ok {
				return end, true
			}
		}
		return 0, false
	default:
		if pos < len(tokens) && head.accepts(tokens[pos]) {
			return matchAt(rest, tokens, pos+1)
		}
		return 0, false
	}
}

func (p TokenPattern) accepts(tok Token) bool {
	if len(p.Tags) > 0 && !slices.Contains(p.Tags, tok.Tag) {
		return false
	}
	if p.Title {
		r, _ := utf8.DecodeRuneInString(tok.Text)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
