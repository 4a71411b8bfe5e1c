package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/config"
	"github.com/kilianp07/predtrack/core/factory"
	coremetrics "github.com/kilianp07/predtrack/core/metrics"
	corepref "github.com/kilianp07/predtrack/core/preferences"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Data.Predictions = filepath.Join("..", "data", "predictions.json")
	cfg.Data.BlogPosts = filepath.Join("..", "data", "blogPosts.json")
	cfg.Preferences.Backend = "sqlite"
	cfg.Preferences.Path = filepath.Join(t.TempDir(), "prefs.db")
	cfg.Server.Address = "127.0.0.1:0"
	return cfg
}

func TestNewBuildsService(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, svc.Close()) }()

	assert.Equal(t, 6, svc.Tracker.Overview().Total)
	th, err := svc.Prefs.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, corepref.ThemeLight, th)

	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewFailsOnMissingData(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Predictions = filepath.Join(t.TempDir(), "none.json")
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewFailsOnUnknownSink(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "statsd"}}
	_, err := New(cfg)
	assert.Error(t, err)
}

var sinkClosed atomic.Bool

type closingSink struct{ coremetrics.NopSink }

func (closingSink) Close() error {
	sinkClosed.Store(true)
	return nil
}

func TestNewClosesSinkWhenStoreFails(t *testing.T) {
	sinkClosed.Store(false)
	_ = coremetrics.RegisterSink("app-closing", func(map[string]any) (coremetrics.Sink, error) {
		return closingSink{}, nil
	})

	cfg := testConfig(t)
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "app-closing"}}
	cfg.Preferences.Backend = "etcd"
	_, err := New(cfg)
	require.Error(t, err)
	assert.True(t, sinkClosed.Load(), "metrics sink left open")
}

func TestServeStopsOnCancel(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/timeline")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "February 2027")

	cancel()
	assert.NoError(t, <-done)
}
