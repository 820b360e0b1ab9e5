package nlp

// NounChunks returns the maximal runs of adjectives and nouns that end in a
// noun, the base noun phrases of the token stream.
func NounChunks(tokens []Token) []Span {
	var chunks []Span

	start := -1
	lastNoun := -1
	flush := func() {
		if start >= 0 && lastNoun >= start {
			chunks = append(chunks, Span{
				Start: start,
				End:   lastNoun + 1,
				Text:  joinTokens(tokens[start : lastNoun+1]),
				Label: "NP",
			})
		}
		start = -1
		lastNoun = -1
	}

	for i, tok := range tokens {
		switch {
		case IsNoun(tok.Tag):
			if start < 0 {
				start = i
			}
			lastNoun = i
		case isAdjective(tok.Tag):
			// an adjective after a noun opens a new phrase
			if lastNoun >= 0 {
				flush()
			}
			if start < 0 {
				start = i
			}
		default:
			flush()
		}
	}
	flush()

	return chunks
}

func isAdjective(tag string) bool {
	return tag == "JJ" || tag == "JJR" || tag == "JJS"
}
