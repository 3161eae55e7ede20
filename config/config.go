package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/schoolrun/core/commute"
	"github.com/kilianp07/schoolrun/core/metrics"
)

// EnvPrefix marks environment overrides. SR_ENGINE__WAKE_POLICY sets
// engine.wake_policy.
const EnvPrefix = "SR_"

type Config struct {
	Engine  commute.Config `json:"engine"`
	Metrics metrics.Config `json:"metrics"`
	Server  ServerConfig   `json:"server"`
	Logging LoggingConfig  `json:"logging"`
}

// ServerConfig configures the HTTP prediction endpoint.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Engine.SetDefaults()
	c.Metrics.SetDefaults()
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Load reads path, applies environment overrides, fills defaults and
// validates. An empty path loads only defaults and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	prefix := strings.ToLower(EnvPrefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), prefix)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
