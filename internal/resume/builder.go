package resume

// Builder collects field results during a parsing session. A builder is
// owned by one session and is not safe for concurrent use.
type Builder struct {
	rec Record
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Name(f Field[string]) *Builder {
	b.rec.Name = f
	return b
}

func (b *Builder) Email(f Field[string]) *Builder {
	b.rec.Email = f
	return b
}

func (b *Builder) Mobile(f Field[string]) *Builder {
	b.rec.Mobile = f
	return b
}

func (b *Builder) Skills(f Field[[]string]) *Builder {
	b.rec.Skills = f
	return b
}

func (b *Builder) University(f Field[[]string]) *Builder {
	b.rec.University = f
	return b
}

func (b *Builder) Degree(f Field[[]string]) *Builder {
	b.rec.Degree = f
	return b
}

func (b *Builder) Designation(f Field[[]string]) *Builder {
	b.rec.Designation = f
	return b
}

func (b *Builder) Experience(f Field[[]string]) *Builder {
	b.rec.Experience = f
	return b
}

func (b *Builder) CompanyNames(f Field[[]string]) *Builder {
	b.rec.CompanyNames = f
	return b
}

func (b *Builder) Pages(f Field[int]) *Builder {
	b.rec.Pages = f
	return b
}

func (b *Builder) TotalExperience(f Field[float64]) *Builder {
	b.rec.TotalExperience = f
	return b
}

func (b *Builder) Profile(p Profile) *Builder {
	b.rec.Profile = p
	return b
}

// Build returns a copy of the collected record with the default policy
// applied: list fields skills, university and experience become empty
// lists, counters become zero, and every other absent field stays absent.
func (b *Builder) Build() Record {
	r := b.rec

	r.Skills = Present(listOrEmpty(r.Skills))
	r.University = Present(listOrEmpty(r.University))
	r.Experience = Present(listOrEmpty(r.Experience))

	r.Degree = cloneList(r.Degree)
	r.Designation = cloneList(r.Designation)
	r.CompanyNames = cloneList(r.CompanyNames)

	r.Pages = Present(r.Pages.OrElse(0))
	r.TotalExperience = Present(r.TotalExperience.OrElse(0))
	r.Profile = r.Profile.clone()

	return r
}

// cloneList copies a present list; an empty list counts as absent.
func cloneList(f Field[[]string]) Field[[]string] {
	v, ok := f.Get()
	if !ok || len(v) == 0 {
		return Absent[[]string]()
	}
	return Present(cloneStrings(v))
}
