// Package logging defines the structured-logging interface used across the
// catalog client and the mock API. Two backends are provided: log/slog and
// logrus.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "movie created", "id", m.ID, "title", m.Title)
type Logger interface {
	// Debug logs diagnostic detail, such as individual HTTP requests.
	Debug(ctx context.Context, msg string, args ...any)
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)
	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a Logger writing to w. Format "json" selects the logrus backend
// with its JSON formatter; anything else selects slog's text handler.
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		l, err := NewLogrusJSON(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil
	case FormatText, "":
		l, err := NewSlogText(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Discard returns a Logger that drops everything. Handy in tests.
func Discard() Logger {
	l, _ := NewSlogText(io.Discard, "error")
	return l
}
