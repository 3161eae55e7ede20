package metrics

import (
	"fmt"

	"github.com/kilianp07/schoolrun/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is where the serve command exposes /metrics.
	PrometheusAddr string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks that every sink names a type.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics: sink %d has no type", i)
		}
	}
	return nil
}
