// Package logger configures the process-wide slog logger for the
// notetaker service.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log formats supported by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel converts a string level to a slog.Level. Unknown levels
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to out with the given level and format.
// Every record carries a service attribute so interleaved output from
// multiple MCP servers stays attributable.
func New(out io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler).With("service", "notetaker")
}

// Setup creates a logger on stderr and installs it as the slog
// default. Stdout is reserved for the MCP stdio transport, so all
// logging goes to stderr.
func Setup(level, format string) *slog.Logger {
	log := New(os.Stderr, level, format)
	slog.SetDefault(log)
	return log
}
