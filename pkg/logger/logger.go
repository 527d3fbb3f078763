/**
 * @description
 * This package builds the service's zerolog logger. Production output is JSON
 * on stdout; development output goes through zerolog's ConsoleWriter.
 *
 * @dependencies
 * - github.com/rs/zerolog: structured, leveled logging.
 */
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the logger is built.
type Config struct {
	AppEnv  string
	Level   string
	Service string
}

// Logger aliases zerolog.Logger so callers can depend on the logging
// contract through this package.
type Logger = zerolog.Logger

// New constructs the root logger for the service.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter constructs a logger that writes to out.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if strings.EqualFold(cfg.AppEnv, "development") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	service := cfg.Service
	if service == "" {
		service = "payment-service"
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// Component returns a child logger tagged with the given component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
