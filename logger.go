package cola

// logger.go defines the logging interface and default implementation.
//
// Reference: internal/logging/logger.go's five-level (Error/Warn/Info/
// Debug/Fatal) Logger interface shape. The default implementation here
// is backed by go.uber.org/zap's SugaredLogger instead of a bare
// log.Logger, the way iamNilotpal/ignite wires zap as its embedded
// engine's logger.

import "go.uber.org/zap"

// Logger is the logging interface database operations write through.
// Implementations must be safe for concurrent use if the same Logger
// is shared across multiple DB handles.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// zapLogger adapts a zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger builds a Logger backed by the given zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{s: l.Sugar()}
}

func (z *zapLogger) Errorf(format string, args ...any) { z.s.Errorf(format, args...) }
func (z *zapLogger) Warnf(format string, args ...any)  { z.s.Warnf(format, args...) }
func (z *zapLogger) Infof(format string, args ...any)  { z.s.Infof(format, args...) }
func (z *zapLogger) Debugf(format string, args ...any) { z.s.Debugf(format, args...) }

// defaultLogger builds the production-default logger: zap's standard
// production config (JSON, Info level and above), writing to stderr.
func defaultLogger() Logger {
	l, err := zap.NewProduction()
	if err != nil {
		return DiscardLogger{}
	}
	return NewZapLogger(l)
}

// DiscardLogger is a Logger that drops everything. Tests pass it as
// Options.Logger, and defaultLogger falls back to it when the zap
// logger cannot be built.
type DiscardLogger struct{}

func (DiscardLogger) Errorf(string, ...any) {}
func (DiscardLogger) Warnf(string, ...any)  {}
func (DiscardLogger) Infof(string, ...any)  {}
func (DiscardLogger) Debugf(string, ...any) {}
