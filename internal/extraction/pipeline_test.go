package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/nlp"
	"github.com/spigell/resume-parser/internal/resume"
)

type stubDomain struct {
	entities ai.Entities
	err      error
	calls    int
}

func (s *stubDomain) Predict(context.Context, string) (ai.Entities, error) {
	s.calls++
	return s.entities, s.err
}

func (s *stubDomain) Name() string { return "stub" }

type panicStep struct {
	toggle
}

func (p *panicStep) Name() string        { return "panics" }
func (p *panicStep) Validate(Deps) error { return nil }
func (p *panicStep) Apply(context.Context, Deps, *Session) (Outcome, error) {
	panic("boom")
}

type failingStep struct {
	toggle
}

func (f *failingStep) Name() string        { return "fails" }
func (f *failingStep) Validate(Deps) error { return nil }
func (f *failingStep) Apply(context.Context, Deps, *Session) (Outcome, error) {
	return Outcome{}, errors.New("step failed")
}

const pipelineRaw = `John Smith
john@example.com (415) 555-2671

Experience
Engineer, Acme
Jan 2019 - Jan 2021

Education
Stanford University`

func annotatedSample() *nlp.Annotated {
	tokens := []nlp.Token{
		{Text: "John", Tag: "NNP"},
		{Text: "Smith", Tag: "NNP"},
		{Text: "knows", Tag: "VBZ"},
		{Text: "Python", Tag: "NNP"},
		{Text: "and", Tag: "CC"},
		{Text: "cooking", Tag: "NN"},
		{Text: "and", Tag: "CC"},
		{Text: "Go", Tag: "NNP"},
	}
	return &nlp.Annotated{Tokens: tokens, NounChunks: nlp.NounChunks(tokens)}
}

func testDeps(t *testing.T, domain ai.EntityModel) Deps {
	t.Helper()
	mobile, err := NewMobileExtractor("")
	if err != nil {
		t.Fatalf("mobile extractor: %v", err)
	}
	return Deps{
		Domain:      domain,
		Mobile:      mobile,
		Gazetteer:   NewGazetteer("python", "go"),
		NameMatcher: nlp.NameMatcher(0),
		Now:         func() time.Time { return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func runSample(t *testing.T, deps Deps, steps []Step, logger *zap.Logger) map[string]any {
	t.Helper()
	p, err := NewPipeline(deps, steps)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	s := NewSession(pipelineRaw, "John Smith john@example.com (415) 555-2671", annotatedSample(), logger)
	p.Run(context.Background(), s)
	return s.Builder.Build().Flatten()
}

func TestPipelineRun(t *testing.T) {
	domain := &stubDomain{entities: ai.Entities{
		ai.LabelDegree:         {"B.Sc"},
		ai.LabelCompanies:      {"Acme"},
		"Employment_0_company": {"Acme"},
	}}

	flat := runSample(t, testDeps(t, domain), DefaultSteps(), zap.NewNop())

	if flat[resume.KeyName] != "John Smith" {
		t.Fatalf("unexpected name: %v", flat[resume.KeyName])
	}
	if flat[resume.KeyEmail] != "john@example.com" {
		t.Fatalf("unexpected email: %v", flat[resume.KeyEmail])
	}
	if flat[resume.KeyMobile] != "(415) 555-2671" {
		t.Fatalf("unexpected mobile: %v", flat[resume.KeyMobile])
	}

	skills := flat[resume.KeySkills].([]string)
	if len(skills) != 2 || skills[0] != "Python" || skills[1] != "Go" {
		t.Fatalf("unexpected skills: %v", skills)
	}

	if got := flat[resume.KeyUniversity].([]string); len(got) != 1 || got[0] != "Stanford University" {
		t.Fatalf("unexpected university: %v", got)
	}
	if flat[resume.KeyTotalExperience] != 2.0 {
		t.Fatalf("unexpected total experience: %v", flat[resume.KeyTotalExperience])
	}
	if got := flat[resume.KeyDegree].([]string); got[0] != "B.Sc" {
		t.Fatalf("unexpected degree: %v", got)
	}
	if got := flat[resume.KeyCompanyNames].([]string); got[0] != "Acme" {
		t.Fatalf("unexpected companies: %v", got)
	}
	if got := flat["Employment_0_company"].([]string); got[0] != "Acme" {
		t.Fatalf("unexpected employment: %v", got)
	}
	if flat[resume.KeyDesignation] != nil {
		t.Fatalf("expected nil designation, got %v", flat[resume.KeyDesignation])
	}
	if domain.calls != 1 {
		t.Fatalf("expected one domain call, got %d", domain.calls)
	}
}

func TestPipelineNamePrecedence(t *testing.T) {
	domain := &stubDomain{entities: ai.Entities{ai.LabelName: {"Johnathan Q. Smith"}}}
	flat := runSample(t, testDeps(t, domain), DefaultSteps(), zap.NewNop())

	if flat[resume.KeyName] != "Johnathan Q. Smith" {
		t.Fatalf("domain name must win, got %v", flat[resume.KeyName])
	}
}

func TestPipelineDomainFailureDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	domain := &stubDomain{err: errors.New("model offline")}

	flat := runSample(t, testDeps(t, domain), DefaultSteps(), zap.New(core))

	if flat[resume.KeyName] != "John Smith" {
		t.Fatalf("expected matcher fallback name, got %v", flat[resume.KeyName])
	}
	if flat[resume.KeyEmail] != "john@example.com" {
		t.Fatalf("heuristics must still run, got %v", flat[resume.KeyEmail])
	}
	if logs.FilterMessage("domain model prediction failed; continuing with heuristics").Len() != 1 {
		t.Fatalf("expected a warning about the domain model, got %v", logs.All())
	}
}

func TestPipelineSkillsDisabled(t *testing.T) {
	steps := DefaultSteps()
	DisableByName(steps, StepSkills, "base skills disabled")

	deps := testDeps(t, &stubDomain{})
	deps.Gazetteer = nil

	flat := runSample(t, deps, steps, zap.NewNop())
	if skills := flat[resume.KeySkills].([]string); len(skills) != 0 {
		t.Fatalf("expected no skills, got %v", skills)
	}

	for _, status := range Describe(steps) {
		if status.Name != StepSkills {
			continue
		}
		if status.Enabled || status.Reason != "base skills disabled" {
			t.Fatalf("unexpected skills status: %+v", status)
		}
	}
}

func TestPipelineStepFailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	steps := append([]Step{&panicStep{}, &failingStep{}}, DefaultSteps()...)
	flat := runSample(t, testDeps(t, &stubDomain{}), steps, zap.New(core))

	if flat[resume.KeyEmail] != "john@example.com" {
		t.Fatalf("later steps must still run, got %v", flat[resume.KeyEmail])
	}

	failures := logs.FilterMessage("extraction step failed").All()
	if len(failures) != 2 {
		t.Fatalf("expected 2 step failures, got %d", len(failures))
	}
	if failures[0].ContextMap()["name"] != "panics" {
		t.Fatalf("unexpected failing step: %v", failures[0].ContextMap())
	}
}

func TestNewPipelineValidation(t *testing.T) {
	deps := testDeps(t, nil)
	if _, err := NewPipeline(deps, DefaultSteps()); err == nil {
		t.Fatal("expected validation error without a domain model")
	}

	steps := DefaultSteps()
	DisableByName(steps, StepDomainEntities, "disabled")
	if _, err := NewPipeline(deps, steps); err != nil {
		t.Fatalf("disabled steps must not be validated: %v", err)
	}
}

func TestResolveName(t *testing.T) {
	annotated := annotatedSample()
	matcher := nlp.NameMatcher(0)

	cases := []struct {
		name     string
		entities ai.Entities
		want     string
		ok       bool
	}{
		{name: "domain wins", entities: ai.Entities{ai.LabelName: {"Jane Roe"}}, want: "Jane Roe", ok: true},
		{name: "empty domain list falls back", entities: ai.Entities{ai.LabelName: {}}, want: "John Smith", ok: true},
		{name: "missing label falls back", entities: ai.Entities{}, want: "John Smith", ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveName(tc.entities, annotated, matcher).Get()
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ResolveName() = %q, %v; want %q, %v", got, ok, tc.want, tc.ok)
			}
		})
	}

	if ResolveName(ai.Entities{}, &nlp.Annotated{}, matcher).IsPresent() {
		t.Fatal("expected absent name when neither strategy matches")
	}
}

func TestPersonNameFallback(t *testing.T) {
	annotated := &nlp.Annotated{
		Tokens: []nlp.Token{
			{Text: "contact", Tag: "NN", Label: "B-PERSON"},
			{Text: "Maria", Tag: "NNP", Label: "B-PERSON"},
			{Text: "lives", Tag: "VBZ"},
		},
		Entities: []nlp.Span{
			{Start: 0, End: 1, Text: "contact", Label: "PERSON"},
			{Start: 1, End: 2, Text: "Maria", Label: "PERSON"},
		},
	}

	got, ok := ResolveName(ai.Entities{}, annotated, nlp.NameMatcher(0)).Get()
	if !ok || got != "Maria" {
		t.Fatalf("ResolveName() = %q, %v; want the proper noun person entity", got, ok)
	}

	annotated.Entities = annotated.Entities[:1]
	if PersonName(annotated).IsPresent() {
		t.Fatal("person entity made of common nouns must be ignored")
	}
}

func TestNewPipelineRequiresNamePattern(t *testing.T) {
	deps := testDeps(t, nil)
	deps.NameMatcher = nlp.NewMatcher(0)

	steps := DefaultSteps()
	DisableByName(steps, StepDomainEntities, "disabled")
	if _, err := NewPipeline(deps, steps); err == nil {
		t.Fatal("expected validation error for a matcher without patterns")
	}
}
