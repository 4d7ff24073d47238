package parser

import (
	"context"
	"log/slog"
)

// Logger receives the diagnostics produced while reading a document and
// binding its operations. Attributes follow the log/slog convention of
// alternating keys and values:
//
//	log.Warn("operation not bound", "method", "GET", "path", "/items", "missing", "x-data-type")
//
// [NewSlogAdapter] covers the common case.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	// Warn is used for operations that are skipped or bound with defaults.
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger drops every record. A nil Logger option behaves like NopLogger.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter sends records to a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps l; a nil l means slog.Default().
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{logger: l}
}

func (s *SlogAdapter) emit(level slog.Level, msg string, attrs []any) {
	s.logger.Log(context.Background(), level, msg, attrs...)
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.emit(slog.LevelDebug, msg, attrs) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.emit(slog.LevelInfo, msg, attrs) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.emit(slog.LevelWarn, msg, attrs) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.emit(slog.LevelError, msg, attrs) }

func (s *SlogAdapter) With(attrs ...any) Logger {
	return NewSlogAdapter(s.logger.With(attrs...))
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)

func orNop(l Logger) Logger {
	if l != nil {
		return l
	}
	return NopLogger{}
}
