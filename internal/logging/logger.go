// Package logging configures log/slog for the server and the CLI.
//
// Loggers taken from a request context carry the chi request ID, so every
// line written while serving one request can be grouped together.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup installs the default logger writing to stdout.
//
// level is one of debug, info, warn or error and falls back to info.
// format "json" selects the JSON handler; anything else writes text.
func Setup(level, format string) {
	slog.SetDefault(slog.New(newHandler(os.Stdout, level, format)))
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// FromContext returns the default logger, tagged with request_id when ctx
// belongs to a request that went through chi's RequestID middleware.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := middleware.GetReqID(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}

// WithSession adds the roster session ID to the request logger.
func WithSession(ctx context.Context, sessionID string) *slog.Logger {
	l := FromContext(ctx)
	if sessionID != "" {
		l = l.With("session_id", sessionID)
	}
	return l
}
