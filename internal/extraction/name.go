package extraction

import (
	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/nlp"
	"github.com/spigell/resume-parser/internal/resume"
)

// personLabel is the general model entity label for people.
const personLabel = "PERSON"

// ResolveName prefers the first domain model Name, then the first pattern
// match over the general model tokens, then the first person entity.
func ResolveName(entities ai.Entities, annotated *nlp.Annotated, matcher *nlp.Matcher) resume.Field[string] {
	if name, ok := entities.First(ai.LabelName); ok {
		return resume.Present(name)
	}
	if name := MatchName(annotated, matcher); name.IsPresent() {
		return name
	}
	return PersonName(annotated)
}

// MatchName runs only the pattern strategy.
func MatchName(annotated *nlp.Annotated, matcher *nlp.Matcher) resume.Field[string] {
	if annotated == nil || matcher == nil {
		return resume.Absent[string]()
	}
	match, ok := matcher.FindFirst(annotated.Tokens)
	if !ok {
		return resume.Absent[string]()
	}
	return resume.Present(match.Text)
}

// PersonName returns the first PERSON entity whose tokens are all proper
// nouns.
func PersonName(annotated *nlp.Annotated) resume.Field[string] {
	if annotated == nil {
		return resume.Absent[string]()
	}
	for _, span := range annotated.Entities {
		if span.Label != personLabel || span.Start < 0 || span.End > len(annotated.Tokens) || span.Start >= span.End {
			continue
		}
		proper := true
		for _, tok := range annotated.Tokens[span.Start:span.End] {
			if !nlp.IsProperNoun(tok.Tag) {
				proper = false
				break
			}
		}
		if proper {
			return resume.Present(span.Text)
		}
	}
	return resume.Absent[string]()
}
