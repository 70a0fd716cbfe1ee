// Package logging provides the structured logger shared by the CLI and the
// drivers. It wraps log/slog with level, format and output taken from
// config.LoggingConfig.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PixPMusic/tindrivers/internal/config"
)

// Logger wraps slog.Logger. It is safe for concurrent use, which the drivers
// rely on: input frames are logged from the MIDI callback goroutine.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to the configured output.
func New(cfg config.LoggingConfig) *Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}
	return NewWithWriter(cfg, output)
}

// NewWithWriter creates a Logger writing to w; cfg.Output is ignored.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "tindrivers"),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel converts a string log level to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
