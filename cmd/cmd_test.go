package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/preferences"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	data, err := filepath.Abs(filepath.Join("..", "data"))
	require.NoError(t, err)
	dir := t.TempDir()
	cfg := fmt.Sprintf(`data:
  predictions: %q
  blog_posts: %q
preferences:
  backend: sqlite
  path: %q
log:
  level: error
`, filepath.Join(data, "predictions.json"), filepath.Join(data, "blogPosts.json"), filepath.Join(dir, "prefs.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	predOpts.search, predOpts.status, predOpts.category, predOpts.sort = "", "", "", ""
	predOpts.format = "table"
	blogTag = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestPredictionsLsCSV(t *testing.T) {
	out := run(t, writeConfig(t), "predictions", "ls", "--category", "OpenBrain", "--sort", "accuracyScore", "-o", "csv")
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "P003", rows[1][0])
	assert.Equal(t, "P002", rows[2][0])
}

func TestPredictionsShowAndFacets(t *testing.T) {
	cfg := writeConfig(t)
	out := run(t, cfg, "predictions", "show", "P003")
	assert.Contains(t, out, "Confirmed Accurate")
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, "March 1, 2026")

	out = run(t, cfg, "predictions", "facets")
	assert.Contains(t, out, "Categories:")
	assert.Contains(t, out, "Pending Evaluation")
}

func TestPredictionsShowUnknown(t *testing.T) {
	rootCmd.SetArgs([]string{"--config", writeConfig(t), "predictions", "show", "P999"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}

func TestTimelineAndSummary(t *testing.T) {
	cfg := writeConfig(t)
	out := run(t, cfg, "timeline")
	assert.Contains(t, out, "90% accuracy")
	assert.Contains(t, out, "not yet scored")

	out = run(t, cfg, "summary")
	assert.Contains(t, out, "Overall accuracy:   50%")
	assert.Contains(t, out, "Evaluated:          4 (67%)")
}

func TestBlogCommands(t *testing.T) {
	cfg := writeConfig(t)
	out := run(t, cfg, "blog", "ls")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "B001"))

	out = run(t, cfg, "blog", "new")
	assert.Contains(t, out, `"id": "B003"`)

	out = run(t, cfg, "blog", "show", "B002")
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestThemeCommands(t *testing.T) {
	cfg := writeConfig(t)
	assert.Equal(t, "light\n", run(t, cfg, "theme", "get"))
	assert.Equal(t, "dark\n", run(t, cfg, "theme", "toggle"))
	assert.Equal(t, "dark\n", run(t, cfg, "theme", "get"))
	assert.Equal(t, "light\n", run(t, cfg, "theme", "set", "LIGHT"))
}

func TestRouteCommands(t *testing.T) {
	cfg := writeConfig(t)
	assert.Equal(t, "/prediction/P001\n", run(t, cfg, "route", "predictionDetail", "P001"))
	assert.Equal(t, "/predictions\n", run(t, cfg, "route", "predictionDetail"))
	assert.Equal(t, "/blog?a=1\n", run(t, cfg, "route", "resolve", "https://example.org/?p=/blog&a=1"))
}

func TestRenderPost(t *testing.T) {
	post := model.BlogPost{ID: "B9", Title: "T", Date: "2025-07-01", Author: "A", Content: "# Heading\n\nBody text."}
	for _, th := range []preferences.Theme{preferences.ThemeLight, preferences.ThemeDark} {
		out, err := renderPost(post, th)
		require.NoError(t, err)
		assert.Contains(t, out, "Body")
	}
}
