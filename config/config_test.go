package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/core/prediction"
	"github.com/kilianp07/predtrack/core/preferences"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `data:
  predictions: "testdata/p.yaml"
  blog_posts: "testdata/b.json"
timeline:
  segments: ["Mid 2025", "Late 2025"]
server:
  address: ":9000"
  base_path: "/tracker/"
metrics:
  sinks:
    - type: "nop"
preferences:
  backend: sqlite
  path: /tmp/prefs.db
  default_theme: dark
log:
  level: debug
  format: console
cache:
  ttl_seconds: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"predictions", cfg.Data.Predictions, "testdata/p.yaml"},
		{"blog_posts", cfg.Data.BlogPosts, "testdata/b.json"},
		{"segments", len(cfg.Timeline.Segments), 2},
		{"address", cfg.Server.Address, ":9000"},
		{"base_path", cfg.Server.BasePath, "/tracker"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"backend", cfg.Preferences.Backend, "sqlite"},
		{"theme", cfg.Preferences.Theme(), preferences.ThemeDark},
		{"level", cfg.Log.Level, "debug"},
		{"format", cfg.Log.Options().Format, "console"},
		{"ttl", cfg.Cache.TTL(), 30 * time.Second},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
	assert.Equal(t, "/tmp/prefs.db", cfg.Preferences.Module().Conf["path"])
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data/predictions.json", cfg.Data.Predictions)
	assert.Equal(t, prediction.CanonicalSegments, cfg.Timeline.Segments)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "memory", cfg.Preferences.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRACKER_SERVER__ADDRESS", ":7070")
	t.Setenv("TRACKER_SERVER__BASE_PATH", "/ai")
	t.Setenv("TRACKER_LOG__LEVEL", "warn")
	path := writeFile(t, "config.json", `{"server": {"address": ":9000"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "/ai", cfg.Server.BasePath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":   "preferences:\n  backend: redis\n",
		"theme":     "preferences:\n  default_theme: sepia\n",
		"level":     "log:\n  level: verbose\n",
		"base_path": "server:\n  base_path: tracker\n",
		"duplicate": "timeline:\n  segments: [\"A\", \"A\"]\n",
		"ttl":       "cache:\n  ttl_seconds: -1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", data))
			assert.Error(t, err)
		})
	}

	_, err := Load(writeFile(t, "config.toml", ""))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "data/blogPosts.json", cfg.Data.BlogPosts)
	assert.Equal(t, preferences.ThemeLight, cfg.Preferences.Theme())
}
