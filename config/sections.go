package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/predtrack/core/factory"
	"github.com/kilianp07/predtrack/core/prediction"
	"github.com/kilianp07/predtrack/core/preferences"
)

// DataConfig locates the dataset files.
type DataConfig struct {
	Predictions string `json:"predictions"`
	BlogPosts   string `json:"blog_posts"`
}

func (c *DataConfig) SetDefaults() {
	if c.Predictions == "" {
		c.Predictions = "data/predictions.json"
	}
	if c.BlogPosts == "" {
		c.BlogPosts = "data/blogPosts.json"
	}
}

func (c DataConfig) Validate() error {
	if c.Predictions == "" {
		return fmt.Errorf("predictions path is required")
	}
	return nil
}

// TimelineConfig holds the canonical segment order.
type TimelineConfig struct {
	Segments []string `json:"segments"`
}

func (c *TimelineConfig) SetDefaults() {
	if len(c.Segments) == 0 {
		c.Segments = append([]string(nil), prediction.CanonicalSegments...)
	}
}

func (c TimelineConfig) Validate() error {
	seen := make(map[string]bool, len(c.Segments))
	for _, s := range c.Segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("blank segment label")
		}
		if seen[s] {
			return fmt.Errorf("duplicate segment %q", s)
		}
		seen[s] = true
	}
	return nil
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Address  string `json:"address"`
	BasePath string `json:"base_path"`
	// WriteToken, when set, is required as a bearer token on preference updates.
	WriteToken string `json:"write_token"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")
}

func (c ServerConfig) Validate() error {
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %q", c.BasePath)
	}
	return nil
}

// PreferencesConfig selects the preference store.
type PreferencesConfig struct {
	// Backend is "memory" or "sqlite".
	Backend      string `json:"backend"`
	Path         string `json:"path"`
	DefaultTheme string `json:"default_theme"`
}

func (c *PreferencesConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.Path == "" {
		c.Path = "preferences.db"
	}
	if c.DefaultTheme == "" {
		c.DefaultTheme = string(preferences.ThemeLight)
	}
}

func (c PreferencesConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "sqlite" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if _, err := preferences.ParseTheme(c.DefaultTheme); err != nil {
		return err
	}
	return nil
}

// Module converts the section into a store module definition.
func (c PreferencesConfig) Module() factory.ModuleConfig {
	return factory.ModuleConfig{Type: c.Backend, Conf: map[string]any{"path": c.Path}}
}

// Theme returns the configured default theme.
func (c PreferencesConfig) Theme() preferences.Theme {
	t, err := preferences.ParseTheme(c.DefaultTheme)
	if err != nil {
		return preferences.ThemeLight
	}
	return t
}

// CacheConfig controls memoisation of derived views.
type CacheConfig struct {
	// TTLSeconds of zero keeps entries for the process lifetime.
	TTLSeconds int `json:"ttl_seconds"`
}

func (c CacheConfig) Validate() error {
	if c.TTLSeconds < 0 {
		return fmt.Errorf("ttl_seconds must not be negative")
	}
	return nil
}

// TTL returns the configured duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
