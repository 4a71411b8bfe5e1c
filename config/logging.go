package config

import (
	"fmt"

	"github.com/kilianp07/predtrack/infra/logger"
)

// LogConfig defines the level and output format of application logs.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
	// Format is "json" or "console". Empty defers to APP_ENV.
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level and format names.
func (c LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %s", c.Level)
	}
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown format %s", c.Format)
	}
	return nil
}

// Options converts the section for infra/logger.
func (c LogConfig) Options() logger.Options {
	return logger.Options{Level: c.Level, Format: c.Format}
}
