package extraction

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/resume"
)

// Step names.
const (
	StepDomainEntities = "domain_entities"
	StepName           = "name"
	StepEmail          = "email"
	StepMobile         = "mobile_number"
	StepSkills         = "skills"
	StepSections       = "sections"
)

// DefaultSteps returns a fresh step list in execution order. The domain
// step runs first because name resolution reads its output.
func DefaultSteps() []Step {
	return []Step{
		NewDomainEntities(),
		NewName(),
		NewEmail(),
		NewMobile(),
		NewSkills(),
		NewSections(),
	}
}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type domainEntitiesStep struct {
	toggle
	model string
}

// NewDomainEntities creates the step that queries the domain entity model
// and copies its labels into the record.
func NewDomainEntities() Step {
	return &domainEntitiesStep{}
}

func (st *domainEntitiesStep) Name() string { return StepDomainEntities }

func (st *domainEntitiesStep) Validate(deps Deps) error {
	if deps.Domain == nil {
		return errors.New("domain entity model is required")
	}
	st.model = deps.Domain.Name()
	return nil
}

func (st *domainEntitiesStep) Apply(ctx context.Context, deps Deps, s *Session) (Outcome, error) {
	entities, err := deps.Domain.Predict(ctx, s.Raw)
	if err != nil {
		s.Logger.Warn("domain model prediction failed; continuing with heuristics",
			zap.String("model", deps.Domain.Name()),
			zap.Error(err),
		)
		entities = ai.Entities{}
	}
	if entities == nil {
		entities = ai.Entities{}
	}
	s.Entities = entities

	degree := entities.Values(ai.LabelDegree)
	designation := entities.Values(ai.LabelDesignation)
	companies := entities.Values(ai.LabelCompanies)

	s.Builder.
		Degree(resume.FromOK(degree, len(degree) > 0)).
		Designation(resume.FromOK(designation, len(designation) > 0)).
		CompanyNames(resume.FromOK(companies, len(companies) > 0)).
		Profile(resume.ProfileFromEntities(entities))

	labels := entities.Labels()
	return Outcome{Found: len(labels) > 0, Values: len(labels)}, nil
}

func (st *domainEntitiesStep) Status() Status {
	details := map[string]string{}
	if st.model != "" {
		details["model"] = st.model
	}
	return Status{Name: st.Name(), Enabled: st.IsEnabled(), Reason: st.reason, Details: details}
}

type nameStep struct {
	toggle
}

// NewName creates the step that resolves the candidate name.
func NewName() Step {
	return &nameStep{}
}

func (st *nameStep) Name() string { return StepName }

func (st *nameStep) Validate(deps Deps) error {
	if deps.NameMatcher == nil || deps.NameMatcher.Len() == 0 {
		return errors.New("name matcher with at least one pattern is required")
	}
	return nil
}

func (st *nameStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	field := ResolveName(s.Entities, s.Annotated, deps.NameMatcher)
	s.Builder.Name(field)
	return presence(field), nil
}

type emailStep struct {
	toggle
}

func NewEmail() Step {
	return &emailStep{}
}

func (st *emailStep) Name() string { return StepEmail }

func (st *emailStep) Validate(Deps) error { return nil }

func (st *emailStep) Apply(_ context.Context, _ Deps, s *Session) (Outcome, error) {
	field := ExtractEmail(s.Text)
	s.Builder.Email(field)
	return presence(field), nil
}

type mobileStep struct {
	toggle
	custom bool
}

func NewMobile() Step {
	return &mobileStep{}
}

func (st *mobileStep) Name() string { return StepMobile }

func (st *mobileStep) Validate(deps Deps) error {
	if deps.Mobile == nil {
		return errors.New("mobile extractor is required")
	}
	st.custom = deps.Mobile.Custom()
	return nil
}

func (st *mobileStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	field := deps.Mobile.Extract(s.Text)
	s.Builder.Mobile(field)
	return presence(field), nil
}

func (st *mobileStep) Status() Status {
	details := map[string]string{"custom_regex": strconv.FormatBool(st.custom)}
	return Status{Name: st.Name(), Enabled: st.IsEnabled(), Reason: st.reason, Details: details}
}

type skillsStep struct {
	toggle
	size int
}

// NewSkills creates the step that matches noun phrases against the skills
// gazetteer.
func NewSkills() Step {
	return &skillsStep{}
}

func (st *skillsStep) Name() string { return StepSkills }

func (st *skillsStep) Validate(deps Deps) error {
	if deps.Gazetteer == nil {
		return errors.New("skills gazetteer is required")
	}
	st.size = deps.Gazetteer.Len()
	return nil
}

func (st *skillsStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	skills := MatchSkills(SkillCandidates(s.Annotated), deps.Gazetteer)
	s.Builder.Skills(resume.Present(skills))
	return Outcome{Found: len(skills) > 0, Values: len(skills)}, nil
}

func (st *skillsStep) Status() Status {
	details := map[string]string{}
	if st.size > 0 {
		details["gazetteer_size"] = strconv.Itoa(st.size)
	}
	return Status{Name: st.Name(), Enabled: st.IsEnabled(), Reason: st.reason, Details: details}
}

type sectionsStep struct {
	toggle
}

// NewSections creates the step that segments the raw text and derives
// university, experience and total experience.
func NewSections() Step {
	return &sectionsStep{}
}

func (st *sectionsStep) Name() string { return StepSections }

func (st *sectionsStep) Validate(Deps) error { return nil }

func (st *sectionsStep) Apply(_ context.Context, deps Deps, s *Session) (Outcome, error) {
	sections := Segment(s.Raw)
	experience := sections.Lines(SectionExperience)
	universities := sections.Universities()

	s.Builder.
		University(resume.Present(universities)).
		Experience(resume.Present(experience)).
		TotalExperience(TotalExperience(experience, deps.Now()))

	return Outcome{Found: len(sections) > 0, Values: len(sections)}, nil
}

func presence[T any](f resume.Field[T]) Outcome {
	if f.IsPresent() {
		return Outcome{Found: true, Values: 1}
	}
	return Outcome{}
}
