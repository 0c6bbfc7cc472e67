package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the log format of a terminal session.
type Options struct {
	JSON  bool
	Debug bool
	// Color enables coloured levels in console output.
	Color bool
	// Session is attached to every entry so one run can be followed.
	Session string
}

// New builds the process logger. Logs go to stderr so rendered results on
// stdout stay readable and can be piped.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig(opts),
	}

	if opts.JSON {
		cfg.Encoding = "json"
	}

	if opts.Session != "" {
		cfg.InitialFields = map[string]interface{}{FieldSession: opts.Session}
	}

	return cfg.Build()
}

func encoderConfig(opts Options) zapcore.EncoderConfig {
	encodeLevel := zapcore.LowercaseLevelEncoder
	if opts.Color && !opts.JSON {
		encodeLevel = zapcore.LowercaseColorLevelEncoder
	}

	return zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: encodeLevel,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
