package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger writes to stderr so command output stays clean. APP_ENV=dev switches to the console
// writer. LOG_LEVEL sets the minimum level and defaults to info.
func NewZerologLogger(component string) Logger {
	return NewWithOptions(component, Options{})
}

// NewZerologLoggerWithWriter builds a logger on an arbitrary writer. Every
// entry carries the component field.
func NewZerologLoggerWithWriter(component string, w io.Writer, level zerolog.Level) *ZerologLogger {
	z := zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// yield info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
