package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID tags every entry of one comparison batch.
	FieldRunID = "run_id"
	// FieldEngine is the PDF extraction engine in use.
	FieldEngine = "extractor_engine"
	// FieldProvider is the sentiment provider in use.
	FieldProvider = "sentiment_provider"
	// FieldModel is the sentiment model, set only for LLM providers.
	FieldModel = "sentiment_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the pairs into zap fields, trimming whitespace and
// skipping entries with an empty key or value.
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

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PipelineFields describes the extraction engine and sentiment backend of a run.
func PipelineFields(engine, provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldEngine, Value: engine},
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithPipelineFields attaches PipelineFields to logger.
func WithPipelineFields(logger *zap.Logger, engine, provider, model string) *zap.Logger {
	return WithFields(logger, PipelineFields(engine, provider, model)...)
}
