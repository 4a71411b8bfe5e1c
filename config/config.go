// Package config loads the tracker configuration from a YAML or JSON file
// with TRACKER_ environment overrides.
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

	"github.com/kilianp07/predtrack/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by
// a double underscore, as in TRACKER_SERVER__ADDRESS.
const EnvPrefix = "TRACKER_"

// Config is the full application configuration.
type Config struct {
	Data        DataConfig        `json:"data"`
	Timeline    TimelineConfig    `json:"timeline"`
	Server      ServerConfig      `json:"server"`
	Metrics     metrics.Config    `json:"metrics"`
	Preferences PreferencesConfig `json:"preferences"`
	Log         LogConfig         `json:"log"`
	Cache       CacheConfig       `json:"cache"`
}

// Load reads path and applies environment overrides. An empty path loads
// defaults and environment only.
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
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
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

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Data.SetDefaults()
	c.Timeline.SetDefaults()
	c.Server.SetDefaults()
	c.Preferences.SetDefaults()
	c.Log.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	validators := []struct {
		name string
		fn   func() error
	}{
		{"data", c.Data.Validate},
		{"timeline", c.Timeline.Validate},
		{"server", c.Server.Validate},
		{"preferences", c.Preferences.Validate},
		{"log", c.Log.Validate},
		{"cache", c.Cache.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	return nil
}
