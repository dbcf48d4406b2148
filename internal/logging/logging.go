package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a slog logger writing to stderr and installs it as the default.
// Unknown levels fall back to info, unknown formats to text.
func New(level, format string) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, level, format))
	slog.SetDefault(logger)

	return logger
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
