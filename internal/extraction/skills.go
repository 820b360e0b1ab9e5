package extraction

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spigell/resume-parser/internal/nlp"
)

//go:embed skills.csv
var bundledSkills string

// Gazetteer is a read-only set of known skills, stored normalized.
type Gazetteer struct {
	skills map[string]struct{}
}

// DefaultGazetteer returns the bundled skills list.
func DefaultGazetteer() (*Gazetteer, error) {
	return readGazetteer(strings.NewReader(bundledSkills))
}

// LoadGazetteer reads a CSV file in which every cell is one skill.
func LoadGazetteer(path string) (*Gazetteer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skills file: %w", err)
	}
	defer f.Close()

	g, err := readGazetteer(f)
	if err != nil {
		return nil, fmt.Errorf("read skills file %s: %w", path, err)
	}
	return g, nil
}

// NewGazetteer builds a gazetteer from an in-memory list.
func NewGazetteer(skills ...string) *Gazetteer {
	g := &Gazetteer{skills: make(map[string]struct{}, len(skills))}
	for _, s := range skills {
		if key := normalizeSkill(s); key != "" {
			g.skills[key] = struct{}{}
		}
	}
	return g
}

func readGazetteer(r io.Reader) (*Gazetteer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	g := &Gazetteer{skills: make(map[string]struct{})}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, cell := range record {
			if key := normalizeSkill(cell); key != "" {
				g.skills[key] = struct{}{}
			}
		}
	}

	if len(g.skills) == 0 {
		return nil, errors.New("skills list is empty")
	}
	return g, nil
}

func (g *Gazetteer) Contains(candidate string) bool {
	_, ok := g.skills[normalizeSkill(candidate)]
	return ok
}

func (g *Gazetteer) Len() int { return len(g.skills) }

func normalizeSkill(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// SkillCandidates lists noun chunks and every token that is neither
// punctuation nor a stop word, in document order. A chunk comes before the
// tokens it starts with.
func SkillCandidates(a *nlp.Annotated) []string {
	if a == nil {
		return nil
	}

	type candidate struct {
		start int
		chunk bool
		text  string
	}

	var all []candidate
	for _, c := range a.NounChunks {
		all = append(all, candidate{start: c.Start, chunk: true, text: c.Text})
	}
	for i, tok := range a.Tokens {
		if !nlp.IsPunct(tok.Text) && !nlp.IsStopWord(tok.Text) {
			all = append(all, candidate{start: i, text: tok.Text})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].chunk && !all[j].chunk
	})

	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.text
	}
	return out
}

// MatchSkills keeps the candidates found in the gazetteer. Duplicates are
// dropped case-insensitively; the first surface form wins.
func MatchSkills(candidates []string, g *Gazetteer) []string {
	out := []string{}
	if g == nil {
		return out
	}

	seen := make(map[string]struct{})
	for _, c := range candidates {
		key := normalizeSkill(c)
		if key == "" {
			continue
		}
		if _, ok := g.skills[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(c))
	}
	return out
}
