package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a JSON structured logger tagged with the service name and version.
// Source locations are included at debug level only.
func New(service, version, level string) *slog.Logger {
	lev := ParseLevel(level)

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	})).With("service", service, "version", version)
}

// SetDefault installs the logger as the slog default
func SetDefault(service, version, level string) *slog.Logger {
	l := New(service, version, level)
	slog.SetDefault(l)
	return l
}

// ParseLevel converts a level name into a slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
