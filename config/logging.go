package config

import (
	"fmt"
	"strings"
)

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is a zerolog level name. Empty falls back to LOG_LEVEL, then info.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("unknown log format %s", c.Format)
	}
	switch strings.ToLower(c.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
}
