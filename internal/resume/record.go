package resume

import (
	"encoding/json"
	"math"
)

// Record is the parsed resume. Obtain one from Builder.Build; the record
// shares no memory with the builder or its inputs.
type Record struct {
	Name            Field[string]
	Email           Field[string]
	Mobile          Field[string]
	Skills          Field[[]string]
	University      Field[[]string]
	Degree          Field[[]string]
	Designation     Field[[]string]
	Experience      Field[[]string]
	CompanyNames    Field[[]string]
	Pages           Field[int]
	TotalExperience Field[float64]
	Profile         Profile
}

// Flatten renders the record as the flat mapping. Every key from Keys is
// present; an absent field is written as its default. Lists are copies, so
// editing the mapping leaves the record unchanged.
func (r Record) Flatten() map[string]any {
	out := make(map[string]any, len(Keys()))

	out[KeyName] = nullable(r.Name)
	out[KeyEmail] = nullable(r.Email)
	out[KeyMobile] = nullable(r.Mobile)
	out[KeySkills] = listOrEmpty(r.Skills)
	out[KeyUniversity] = listOrEmpty(r.University)
	out[KeyDegree] = nullableList(r.Degree.OrElse(nil))
	out[KeyDesignation] = nullableList(r.Designation.OrElse(nil))
	out[KeyExperience] = listOrEmpty(r.Experience)
	out[KeyCompanyNames] = nullableList(r.CompanyNames.OrElse(nil))
	out[KeyPages] = r.Pages.OrElse(0)
	out[KeyTotalExperience] = r.TotalExperience.OrElse(0)

	r.Profile.flattenInto(out)

	return out
}

// MarshalJSON encodes the flat mapping.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flatten())
}

// SkillList returns a copy of the matched skills, empty when none.
func (r Record) SkillList() []string {
	return listOrEmpty(r.Skills)
}

// Years converts a month count into years rounded to two decimals.
func Years(months int) float64 {
	if months <= 0 {
		return 0
	}
	return math.Round(float64(months)/12*100) / 100
}

func listOrEmpty(f Field[[]string]) []string {
	v, ok := f.Get()
	if !ok || v == nil {
		return []string{}
	}
	return cloneStrings(v)
}

func nullable[T any](f Field[T]) any {
	if v, ok := f.Get(); ok {
		return v
	}
	return nil
}
