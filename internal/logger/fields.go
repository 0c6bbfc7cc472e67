package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBackend is the structured log field key for the analyzer backend name.
	FieldBackend = "backend"
	// FieldTarget is the structured log field key for the service endpoint or AI model.
	FieldTarget = "target"
	// FieldAction is the structured log field key for the requested analysis action.
	FieldAction = "action"
	// FieldResume is the structured log field key for the selected resume file name.
	FieldResume = "resume"
	// FieldSession identifies one run of the client.
	FieldSession = "session"
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced by a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// BackendFields describes the analyzer backend and where it sends requests.
func BackendFields(backend, target string) []zap.Field {
	return StringFields(
		StringField{Key: FieldBackend, Value: backend},
		StringField{Key: FieldTarget, Value: target},
	)
}

// ActionFields describes one analysis request. Empty values are skipped.
func ActionFields(action, resume string) []zap.Field {
	return StringFields(
		StringField{Key: FieldAction, Value: action},
		StringField{Key: FieldResume, Value: resume},
	)
}
