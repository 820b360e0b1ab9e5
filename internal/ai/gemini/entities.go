package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/ai"
	"github.com/spigell/resume-parser/internal/logger"
)

const (
	// Provider is the configuration name of this domain model.
	Provider = "gemini"

	defaultMaxLogLength = 200
	schemaResource      = "entities.json"
)

//go:embed prompt.md
var systemPrompt string

//go:embed schema.json
var entitiesSchema string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// EntityModel labels resume text with the domain entity tag set using a
// Gemini model.
type EntityModel struct {
	generator contentGenerator
	schema    *jsonschema.Schema
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.EntityModel = (*EntityModel)(nil)

func NewEntityModel(generator contentGenerator, logger *zap.Logger, maxLogLength int) (*EntityModel, error) {
	if generator == nil {
		return nil, errors.New("gemini generator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	return &EntityModel{
		generator: generator,
		schema:    schema,
		logger:    logger,
		maxLogLen: maxLogLength,
	}, nil
}

func (m *EntityModel) Name() string { return Provider }

// Predict asks the model for entity spans in raw and returns them keyed by label.
func (m *EntityModel) Predict(ctx context.Context, raw string) (ai.Entities, error) {
	if strings.TrimSpace(raw) == "" {
		return ai.Entities{}, nil
	}

	prompt := buildPrompt(raw)
	fields := logger.ModelFields(Provider, m.generator.Model())

	m.logger.Debug("gemini generate content request", append(fields,
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, m.maxLogLen)),
	)...)

	response, err := m.generator.GenerateContent(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("gemini generate content response", append(fields,
		zap.Int("response_length", utf8.RuneCountInString(response)),
		zap.String("response_preview", logger.TruncateForLog(response, m.maxLogLen)),
	)...)

	return m.parseResponse(response)
}

func buildPrompt(raw string) string {
	return "Resume text:\n" + raw + "\n\nJSON Response:"
}

func (m *EntityModel) parseResponse(raw string) (ai.Entities, error) {
	cleaned := extractJSON(raw)

	var data any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if obj, ok := data.(map[string]any); ok {
		if nested, ok := obj["entities"].(map[string]any); ok && len(obj) == 1 {
			data = nested
		}
	}

	if err := m.schema.Validate(data); err != nil {
		return nil, fmt.Errorf("gemini response does not match entity schema: %w", err)
	}

	decoded := make(map[string][]string)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return nil, fmt.Errorf("create entity decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decode gemini entities: %w", err)
	}

	entities := make(ai.Entities, len(decoded))
	for label, values := range decoded {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				entities[label] = append(entities[label], v)
			}
		}
	}

	return entities, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, strings.NewReader(entitiesSchema)); err != nil {
		return nil, fmt.Errorf("add entity schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile entity schema: %w", err)
	}
	return schema, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
