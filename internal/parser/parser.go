// Package parser turns resume documents into records. A Parser owns the
// loaded models and may be shared by concurrent callers.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/document"
	"github.com/spigell/resume-parser/internal/extraction"
	"github.com/spigell/resume-parser/internal/logger"
	"github.com/spigell/resume-parser/internal/nlp"
	"github.com/spigell/resume-parser/internal/resume"
)

// Config holds the per-parser options.
type Config struct {
	// SkillsFile replaces the bundled skills list when set.
	SkillsFile string
	// CustomRegex replaces the default mobile number pattern when set.
	CustomRegex string
	// BaseSkills enables skills matching.
	BaseSkills bool
	// NameWindow limits name matches to the first N tokens; 0 means no limit.
	NameWindow int
	// Now is the clock used for open date ranges.
	Now func() time.Time
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{BaseSkills: true}
}

// Deps are the collaborators a parser owns.
type Deps struct {
	Extractor *document.Extractor
	General   nlp.Model
	Domain    ai.EntityModel
	Logger    *zap.Logger
}

// Parser runs parsing sessions.
type Parser struct {
	extractor *document.Extractor
	general   nlp.Model
	domain    ai.EntityModel
	pipeline  *extraction.Pipeline
	logger    *zap.Logger
}

// New builds a parser. Configuration errors, such as an invalid custom
// regex or an unreadable skills file, are returned here.
func New(cfg Config, deps Deps) (*Parser, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = document.NewExtractor()
	}

	general := deps.General
	if general == nil {
		general = nlp.NewProseModel()
	}

	domain := deps.Domain
	if domain == nil {
		domain = ai.Nop{}
	}

	mobile, err := extraction.NewMobileExtractor(cfg.CustomRegex)
	if err != nil {
		return nil, err
	}

	steps := extraction.DefaultSteps()

	var gazetteer *extraction.Gazetteer
	if cfg.BaseSkills {
		gazetteer, err = loadGazetteer(cfg.SkillsFile)
		if err != nil {
			return nil, err
		}
	} else {
		extraction.DisableByName(steps, extraction.StepSkills, "base skills disabled")
	}

	if _, ok := domain.(ai.Nop); ok {
		extraction.DisableByName(steps, extraction.StepDomainEntities, "domain model disabled")
	}

	pipeline, err := extraction.NewPipeline(extraction.Deps{
		Domain:      domain,
		Mobile:      mobile,
		Gazetteer:   gazetteer,
		NameMatcher: nlp.NameMatcher(cfg.NameWindow),
		Now:         cfg.Now,
	}, steps)
	if err != nil {
		return nil, fmt.Errorf("build extraction pipeline: %w", err)
	}

	return &Parser{
		extractor: extractor,
		general:   general,
		domain:    domain,
		pipeline:  pipeline,
		logger:    log,
	}, nil
}

func loadGazetteer(path string) (*extraction.Gazetteer, error) {
	if path = strings.TrimSpace(path); path != "" {
		return extraction.LoadGazetteer(path)
	}
	return extraction.DefaultGazetteer()
}

// Parse runs one session over doc. Only document-level failures are
// returned; a field that cannot be extracted takes its default.
func (p *Parser) Parse(ctx context.Context, doc *document.Document) (resume.Record, error) {
	if doc == nil {
		return resume.Record{}, errors.New("document is required")
	}

	log := logger.WithSession(p.logger, uuid.NewString(), doc.Name(), doc.Ext())
	started := time.Now()

	extracted, err := p.extractor.Extract(doc)
	if err != nil {
		return resume.Record{}, err
	}

	text := document.Normalize(extracted.Text)
	annotated, err := p.general.Annotate(text)
	if err != nil {
		return resume.Record{}, fmt.Errorf("annotate %s: %w", doc.Name(), err)
	}

	session := extraction.NewSession(extracted.Text, text, annotated, log)
	session.Builder.Pages(resume.Present(extracted.Pages))
	p.pipeline.Run(ctx, session)

	record := session.Builder.Build()

	log.Info("resume parsed",
		zap.Int("pages", extracted.Pages),
		zap.Int("text_length", len(text)),
		zap.Bool("name_found", record.Name.IsPresent()),
		zap.Int("skills", len(record.SkillList())),
		zap.Duration("elapsed", time.Since(started)),
	)

	return record, nil
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(ctx context.Context, path string) (resume.Record, error) {
	doc, err := document.Open(path)
	if err != nil {
		return resume.Record{}, err
	}
	return p.Parse(ctx, doc)
}

// Supports reports whether files with ext can be parsed.
func (p *Parser) Supports(ext string) bool {
	return p.extractor.Supports(ext)
}

// Steps describes the extraction steps and whether they are enabled.
func (p *Parser) Steps() []extraction.Status {
	return extraction.Describe(p.pipeline.Steps())
}

// Close releases model handles that hold resources.
func (p *Parser) Close() error {
	var errs []error
	for _, m := range []any{p.general, p.domain} {
		if c, ok := m.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
