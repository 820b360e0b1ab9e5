package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/ai/gemini"
	"github.com/spigell/resume-parser/internal/parser"
	"github.com/spigell/resume-parser/internal/secrets"
)

const geminiKeyHint = "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or the 'domain-model.gemini.api-key-file' key in the configuration file"

func newParser(ctx context.Context, config *Config, logger *zap.Logger) (*parser.Parser, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	domain, err := newEntityModel(ctx, config.DomainModel, logger)
	if err != nil {
		return nil, err
	}

	p, err := parser.New(parser.Config{
		SkillsFile:  config.SkillsFile,
		CustomRegex: config.CustomRegex,
		BaseSkills:  config.BaseSkills,
		NameWindow:  config.NameWindow,
	}, parser.Deps{
		Domain: domain,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	for _, step := range p.Steps() {
		logger.Debug("extraction step",
			zap.String("step", step.Name),
			zap.Bool("enabled", step.Enabled),
			zap.String("reason", step.Reason),
		)
	}

	return p, nil
}

func newEntityModel(ctx context.Context, cfg *DomainModelConfig, logger *zap.Logger) (ai.EntityModel, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("domain model disabled; name falls back to the token pattern")
		return ai.Nop{}, nil
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = gemini.Provider
	}
	if provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported domain model provider %q", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, geminiKeyHint)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger.Info("domain model enabled",
		zap.String("provider", provider),
		zap.String("model", generator.Model()),
	)

	model, err := gemini.NewEntityModel(generator, logger, geminiCfg.MaxLogLength)
	if err != nil {
		return nil, fmt.Errorf("create gemini entity model: %w", err)
	}

	return model, nil
}
