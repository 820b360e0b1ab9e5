package logger

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldDocument is the structured log field key for the resume file name.
	FieldDocument = "document"
	// FieldFormat is the structured log field key for the resume file extension.
	FieldFormat = "format"
	// FieldSession is the structured log field key for a parsing session identifier.
	FieldSession = "session_id"
	// FieldProvider is the structured log field key for the domain model provider.
	FieldProvider = "model_provider"
	// FieldModel is the structured log field key for the domain model identifier.
	FieldModel = "model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes a resume document. Only the base name of the path
// is logged.
func DocumentFields(name, ext string) []zap.Field {
	if name = strings.TrimSpace(name); name != "" {
		name = filepath.Base(name)
	}

	return StringFields(
		StringField{Key: FieldDocument, Value: name},
		StringField{Key: FieldFormat, Value: strings.ToLower(ext)},
	)
}

// ModelFields describes the domain entity model in use.
func ModelFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithSession attaches the session id and document description to the logger.
func WithSession(logger *zap.Logger, sessionID, name, ext string) *zap.Logger {
	fields := StringFields(StringField{Key: FieldSession, Value: sessionID})
	fields = append(fields, DocumentFields(name, ext)...)
	return WithFields(logger, fields...)
}
