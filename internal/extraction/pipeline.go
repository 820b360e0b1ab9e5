package extraction

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/nlp"
	"github.com/spigell/resume-parser/internal/resume"
)

// Step is a single field extractor run against a session.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, s *Session) (Outcome, error)
}

// Deps aggregates the read-only collaborators shared by every session.
type Deps struct {
	Domain      ai.EntityModel
	Mobile      *MobileExtractor
	Gazetteer   *Gazetteer
	NameMatcher *nlp.Matcher
	Now         func() time.Time
}

// Session is the per-document state. It is owned by one goroutine.
type Session struct {
	Raw       string
	Text      string
	Annotated *nlp.Annotated
	Entities  ai.Entities
	Builder   *resume.Builder
	Logger    *zap.Logger
}

// NewSession prepares a session over raw and normalized text.
func NewSession(raw, text string, annotated *nlp.Annotated, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if annotated == nil {
		annotated = &nlp.Annotated{Text: text}
	}
	return &Session{
		Raw:       raw,
		Text:      text,
		Annotated: annotated,
		Entities:  ai.Entities{},
		Builder:   resume.NewBuilder(),
		Logger:    logger,
	}
}

// Outcome describes the result of executing a step.
type Outcome struct {
	Found  bool
	Values int
}

// Status represents runtime information about a step.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type statusProvider interface {
	Status() Status
}

// Pipeline runs steps in order over a session.
type Pipeline struct {
	deps  Deps
	steps []Step
}

// NewPipeline validates every enabled step against deps.
func NewPipeline(deps Deps, steps []Step) (*Pipeline, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(deps); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}
	return &Pipeline{deps: deps, steps: steps}, nil
}

func (p *Pipeline) Steps() []Step { return p.steps }

// Run executes the enabled steps sequentially. A failing or panicking step
// is logged and leaves its fields absent; the remaining steps still run.
func (p *Pipeline) Run(ctx context.Context, s *Session) {
	for _, step := range p.steps {
		if !step.IsEnabled() {
			s.Logger.Debug("extraction step disabled", zap.String("name", step.Name()))
			continue
		}

		outcome, err := p.apply(ctx, step, s)
		if err != nil {
			s.Logger.Warn("extraction step failed",
				zap.String("name", step.Name()),
				zap.Error(err),
			)
			continue
		}

		s.Logger.Debug("extraction step",
			zap.String("name", step.Name()),
			zap.Bool("found", outcome.Found),
			zap.Int("values", outcome.Values),
		)
	}
}

func (p *Pipeline) apply(ctx context.Context, step Step, s *Session) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return step.Apply(ctx, p.deps, s)
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
