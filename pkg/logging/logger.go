package logging

import (
	"context"
	"log/slog"
	"os"
)

// Logger is a structured logger scoped to one agentbridge component.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON slog logger tagged with the component name.
func NewLogger(component string, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "agentbridge"),
	)
	return &Logger{Logger: logger}
}

// NewNop returns a logger that discards everything. Used in tests and as the
// default when callers pass nil.
func NewNop() *Logger {
	return &Logger{Logger: slog.New(discardHandler{})}
}

// WithSession returns a logger with session-specific fields.
func (l *Logger) WithSession(sessionID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("session_id", sessionID))}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
