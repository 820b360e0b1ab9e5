package extraction

import (
	"sort"
	"strings"
	"unicode"
)

// Canonical section names.
const (
	SectionExperience      = "experience"
	SectionEducation       = "education"
	SectionSkills          = "skills"
	SectionProjects        = "projects"
	SectionAccomplishments = "accomplishments"
	SectionCertifications  = "certifications"
	SectionPublications    = "publications"
	SectionInterests       = "interests"
	SectionObjective       = "objective"
	SectionSummary         = "summary"
	SectionLeadership      = "leadership"
)

// maxAnchorWords bounds the length of a heading line.
const maxAnchorWords = 5

var sectionAnchors = map[string]string{
	"experience":              SectionExperience,
	"work experience":         SectionExperience,
	"professional experience": SectionExperience,
	"employment":              SectionExperience,
	"employment history":      SectionExperience,
	"work history":            SectionExperience,
	"education":               SectionEducation,
	"qualifications":          SectionEducation,
	"academic background":     SectionEducation,
	"skills":                  SectionSkills,
	"technical skills":        SectionSkills,
	"projects":                SectionProjects,
	"accomplishments":         SectionAccomplishments,
	"achievements":            SectionAccomplishments,
	"certifications":          SectionCertifications,
	"publications":            SectionPublications,
	"interests":               SectionInterests,
	"objective":               SectionObjective,
	"career objective":        SectionObjective,
	"summary":                 SectionSummary,
	"leadership":              SectionLeadership,
}

// anchorPhrases lists the anchors longest first so that multi-word
// headings win over their last word.
var anchorPhrases = func() []string {
	phrases := make([]string, 0, len(sectionAnchors))
	for p := range sectionAnchors {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		wi, wj := len(strings.Fields(phrases[i])), len(strings.Fields(phrases[j]))
		if wi != wj {
			return wi > wj
		}
		return phrases[i] < phrases[j]
	})
	return phrases
}()

// Sections maps a canonical section name to its lines in document order.
type Sections map[string][]string

// Segment splits raw text into sections. A short line containing an anchor
// keyword opens a section; following non-empty lines belong to it until the
// next heading. Lines before the first heading are not assigned. A heading
// seen twice keeps appending to the same section.
func Segment(raw string) Sections {
	sections := Sections{}
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, ok := sectionHeading(line); ok {
			current = name
			if _, exists := sections[name]; !exists {
				sections[name] = []string{}
			}
			continue
		}

		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}

	return sections
}

// Lines returns a copy of the lines of section name.
func (s Sections) Lines(name string) []string {
	lines := s[name]
	if len(lines) == 0 {
		return []string{}
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Universities returns the education lines that name a university.
func (s Sections) Universities() []string {
	out := []string{}
	for _, line := range s[SectionEducation] {
		if strings.Contains(line, "University") {
			out = append(out, line)
		}
	}
	return out
}

// sectionHeading reports the section a heading line opens. Lines carrying
// a date range are entries, never headings.
func sectionHeading(line string) (string, bool) {
	if monthYearRange.MatchString(line) || numericRange.MatchString(line) {
		return "", false
	}

	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 || len(words) > maxAnchorWords {
		return "", false
	}

	joined := " " + strings.Join(words, " ") + " "
	for _, phrase := range anchorPhrases {
		if strings.Contains(joined, " "+phrase+" ") {
			return sectionAnchors[phrase], true
		}
	}
	return "", false
}
