// Package logging provides zerolog construction and context plumbing.
// All diagnostics go to stderr; stdout stays clean for CLI output.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.WarnLevel,
		Format:     "console",
		TimeFormat: time.Kitchen,
	}
}

// New creates a zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromValues builds a logger from config/env strings.
// level: trace, debug, info, warn, error (default: warn)
// format: json, console (default: console)
func NewFromValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()

	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		cfg.Level = lvl
	}
	if format == "json" || format == "console" {
		cfg.Format = format
	}

	return New(cfg)
}
