package blockstatus

import (
	"go.uber.org/zap"
)

// Logger is the structured logger used for every diagnostic this package emits.
// Arguments are key-value pairs:
//
//	logger.Warn("Skipping block entry", "section", "blacklisted-blocks", "entry", raw)
//
// The shape matches log/slog, zap's SugaredLogger and most other structured
// loggers, so hosts can adapt whatever they already use.
type Logger interface {
	// Info logs normal events such as a completed load.
	Info(msg string, args ...any)

	// Error logs failures that were recovered but should be looked at.
	Error(msg string, args ...any)

	// Warn logs skipped entries and fallbacks to defaults.
	Warn(msg string, args ...any)

	// Debug logs detail that is only useful while diagnosing a config.
	Debug(msg string, args ...any)
}

// NopLogger discards everything. It is the default for every component.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Debug(string, ...any) {}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to Logger. A nil logger yields NopLogger.
func NewZapLogger(l *zap.Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return &zapLogger{sugar: l.Sugar()}
}

func (z *zapLogger) Info(msg string, args ...any)  { z.sugar.Infow(msg, args...) }
func (z *zapLogger) Error(msg string, args ...any) { z.sugar.Errorw(msg, args...) }
func (z *zapLogger) Warn(msg string, args ...any)  { z.sugar.Warnw(msg, args...) }
func (z *zapLogger) Debug(msg string, args ...any) { z.sugar.Debugw(msg, args...) }

func loggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
