// Package logging configures structured logging for the CLI. All logs go
// to stderr as JSON so command output on stdout stays machine-readable.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts a level name to a slog level, defaulting to info for
// anything unrecognized. Matching is case-insensitive.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger writing to stderr with tool name and
// version attached to every record.
func NewLogger(name, version, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("tool", name, "version", version)
}

// Setup installs the logger as the process default. The level comes from
// the argument, falling back to the LOG_LEVEL environment variable.
func Setup(name, version, level string) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	slog.SetDefault(NewLogger(name, version, level))
}
