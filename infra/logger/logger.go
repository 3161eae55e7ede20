package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	corelogger "github.com/kilianp07/schoolrun/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// New returns a Logger for the given component. The output format is picked
// from APP_ENV and the minimum level from LOG_LEVEL.
func New(component string) Logger {
	return NewWithOptions(component, Options{})
}

// Options overrides the environment when building a logger.
type Options struct {
	// Level is a zerolog level name. Empty uses LOG_LEVEL.
	Level string
	// Format is "console" or "json". Empty uses APP_ENV.
	Format string
}

// NewWithOptions returns a stderr Logger for component configured by opts.
func NewWithOptions(component string, opts Options) Logger {
	var out io.Writer = os.Stderr
	format := strings.ToLower(opts.Format)
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	return NewZerologLoggerWithWriter(component, out, ParseLevel(level))
}
