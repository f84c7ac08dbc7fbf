package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used across the service. Every
// entry carries a human message plus a stable event tag for log pipelines.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

// zapLogger adapts a zap.Logger to the Logger interface.
type zapLogger struct {
	l *zap.Logger
}

// New builds a production zap logger at the given level. Unknown levels
// fall back to info.
func New(level string) (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{l: l}, nil
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (z *zapLogger) DebugObj(msg, event string, fields map[string]any) {
	z.l.Debug(msg, zapFields(event, fields)...)
}

func (z *zapLogger) InfoObj(msg, event string, fields map[string]any) {
	z.l.Info(msg, zapFields(event, fields)...)
}

func (z *zapLogger) WarnObj(msg, event string, fields map[string]any) {
	z.l.Warn(msg, zapFields(event, fields)...)
}

func (z *zapLogger) ErrorObj(msg, event string, fields map[string]any) {
	z.l.Error(msg, zapFields(event, fields)...)
}

func zapFields(event string, fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+1)
	out = append(out, zap.String("event", event))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// NopLogger discards everything. Useful as a default and in tests.
type NopLogger struct{}

func (NopLogger) DebugObj(string, string, map[string]any) {}
func (NopLogger) InfoObj(string, string, map[string]any)  {}
func (NopLogger) WarnObj(string, string, map[string]any)  {}
func (NopLogger) ErrorObj(string, string, map[string]any) {}
