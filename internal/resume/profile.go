package resume

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/spigell/resume-parser/internal/ai"
)

var profileListKeys = []string{
	ai.LabelDegree,
	ai.LabelDesignation,
	ai.LabelGraduationDate,
	ai.LabelName,
	ai.LabelSummary,
	ai.LabelUniversity,
}

var (
	employmentLabel  = regexp.MustCompile(`^Employment_(\d+)_(company|description|position|employment_period_start|employment_period_end)$`)
	skillLabel       = regexp.MustCompile(`^Skills_(\d+)$`)
	achievementLabel = regexp.MustCompile(`^Achievements_(\d+)_(name|description)$`)
)

// Employment is one position predicted by the domain model.
type Employment struct {
	Index       int
	Company     []string
	Description []string
	Position    []string
	PeriodStart []string
	PeriodEnd   []string
}

// SkillEntry is one skills group predicted by the domain model.
type SkillEntry struct {
	Index  int
	Values []string
}

// Achievement is one award or achievement predicted by the domain model.
type Achievement struct {
	Index       int
	Name        []string
	Description []string
}

// Profile is the structured form of the domain model output.
type Profile struct {
	Name           []string
	Degree         []string
	Designation    []string
	Summary        []string
	University     []string
	GraduationDate []string
	Employment     []Employment
	Skills         []SkillEntry
	Achievements   []Achievement
}

// ProfileFromEntities groups indexed labels into ordered entries. Labels
// outside the known tag set are ignored.
func ProfileFromEntities(e ai.Entities) Profile {
	p := Profile{
		Name:           e.Values(ai.LabelName),
		Degree:         e.Values(ai.LabelDegree),
		Designation:    e.Values(ai.LabelDesignation),
		Summary:        e.Values(ai.LabelSummary),
		University:     e.Values(ai.LabelUniversity),
		GraduationDate: e.Values(ai.LabelGraduationDate),
	}

	employment := map[int]*Employment{}
	skills := map[int]*SkillEntry{}
	achievements := map[int]*Achievement{}

	for label := range e {
		values := e.Values(label)
		if len(values) == 0 {
			continue
		}

		if m := employmentLabel.FindStringSubmatch(label); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			entry, ok := employment[idx]
			if !ok {
				entry = &Employment{Index: idx}
				employment[idx] = entry
			}
			switch m[2] {
			case "company":
				entry.Company = values
			case "description":
				entry.Description = values
			case "position":
				entry.Position = values
			case "employment_period_start":
				entry.PeriodStart = values
			case "employment_period_end":
				entry.PeriodEnd = values
			}
			continue
		}

		if m := skillLabel.FindStringSubmatch(label); m != nil {
			if idx, err := strconv.Atoi(m[1]); err == nil {
				skills[idx] = &SkillEntry{Index: idx, Values: values}
			}
			continue
		}

		if m := achievementLabel.FindStringSubmatch(label); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			entry, ok := achievements[idx]
			if !ok {
				entry = &Achievement{Index: idx}
				achievements[idx] = entry
			}
			if m[2] == "name" {
				entry.Name = values
			} else {
				entry.Description = values
			}
		}
	}

	for _, idx := range sortedKeys(employment) {
		p.Employment = append(p.Employment, *employment[idx])
	}
	for _, idx := range sortedKeys(skills) {
		p.Skills = append(p.Skills, *skills[idx])
	}
	for _, idx := range sortedKeys(achievements) {
		p.Achievements = append(p.Achievements, *achievements[idx])
	}

	return p
}

// Companies returns the company spans of every employment entry in order.
func (p Profile) Companies() []string {
	var out []string
	for _, e := range p.Employment {
		out = append(out, e.Company...)
	}
	return out
}

// flattenInto writes the domain keys. Entries with an index beyond the
// enumerated slots stay in the structured profile only.
func (p Profile) flattenInto(out map[string]any) {
	lists := map[string][]string{
		ai.LabelDegree:         p.Degree,
		ai.LabelDesignation:    p.Designation,
		ai.LabelGraduationDate: p.GraduationDate,
		ai.LabelName:           p.Name,
		ai.LabelSummary:        p.Summary,
		ai.LabelUniversity:     p.University,
	}
	for _, key := range profileListKeys {
		out[key] = nullableList(lists[key])
	}

	for i := 0; i < EmploymentSlots; i++ {
		for _, attr := range employmentAttributes {
			out[employmentKey(i, attr)] = nil
		}
	}
	for _, e := range p.Employment {
		if e.Index < 0 || e.Index >= EmploymentSlots {
			continue
		}
		out[employmentKey(e.Index, "company")] = nullableList(e.Company)
		out[employmentKey(e.Index, "description")] = nullableList(e.Description)
		out[employmentKey(e.Index, "position")] = nullableList(e.Position)
		out[employmentKey(e.Index, "employment_period_start")] = nullableList(e.PeriodStart)
		out[employmentKey(e.Index, "employment_period_end")] = nullableList(e.PeriodEnd)
	}

	for i := 0; i < SkillSlots; i++ {
		out[skillKey(i)] = nil
	}
	for _, s := range p.Skills {
		if s.Index >= 0 && s.Index < SkillSlots {
			out[skillKey(s.Index)] = nullableList(s.Values)
		}
	}

	for i := 0; i < AchievementSlots; i++ {
		for _, attr := range achievementAttributes {
			out[achievementKey(i, attr)] = nil
		}
	}
	for _, a := range p.Achievements {
		if a.Index < 0 || a.Index >= AchievementSlots {
			continue
		}
		out[achievementKey(a.Index, "name")] = nullableList(a.Name)
		out[achievementKey(a.Index, "description")] = nullableList(a.Description)
	}
}

func (p Profile) clone() Profile {
	c := Profile{
		Name:           cloneStrings(p.Name),
		Degree:         cloneStrings(p.Degree),
		Designation:    cloneStrings(p.Designation),
		Summary:        cloneStrings(p.Summary),
		University:     cloneStrings(p.University),
		GraduationDate: cloneStrings(p.GraduationDate),
	}
	for _, e := range p.Employment {
		c.Employment = append(c.Employment, Employment{
			Index:       e.Index,
			Company:     cloneStrings(e.Company),
			Description: cloneStrings(e.Description),
			Position:    cloneStrings(e.Position),
			PeriodStart: cloneStrings(e.PeriodStart),
			PeriodEnd:   cloneStrings(e.PeriodEnd),
		})
	}
	for _, s := range p.Skills {
		c.Skills = append(c.Skills, SkillEntry{Index: s.Index, Values: cloneStrings(s.Values)})
	}
	for _, a := range p.Achievements {
		c.Achievements = append(c.Achievements, Achievement{
			Index:       a.Index,
			Name:        cloneStrings(a.Name),
			Description: cloneStrings(a.Description),
		})
	}
	return c
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// nullableList keeps the JSON null of a missing list distinct from [].
// nullableList returns a copy of v, or nil when v is empty.
func nullableList(v []string) any {
	if len(v) == 0 {
		return nil
	}
	return cloneStrings(v)
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}
