package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/core/dataset"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/prediction"
	corepref "github.com/kilianp07/predtrack/core/preferences"
	"github.com/kilianp07/predtrack/core/tracker"
	"github.com/kilianp07/predtrack/infra/logger"
)

func newRouter(t *testing.T, base string) http.Handler {
	t.Helper()
	ds, err := dataset.NewLoader(logger.NopLogger{}).Load(
		filepath.Join("..", "data", "predictions.json"),
		filepath.Join("..", "data", "blogPosts.json"))
	require.NoError(t, err)
	prefs := corepref.NewService(corepref.NewMemoryStore(), corepref.ThemeLight)
	t.Cleanup(func() { _ = prefs.Close() })
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("# metrics")) })
	return NewRouter(Deps{
		Tracker:  tracker.New(ds, tracker.Options{}),
		Prefs:    prefs,
		Metrics:  metrics,
		Log:      logger.NopLogger{},
		BasePath: base,
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestPredictionsList(t *testing.T) {
	h := newRouter(t, "")
	rr := get(t, h, "/api/predictions?category=OpenBrain&sort=accuracyScore")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var out []model.Prediction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "P003", out[0].ID)
	assert.Equal(t, "P002", out[1].ID)
}

func TestPredictionsListEmptyIsArray(t *testing.T) {
	rr := get(t, newRouter(t, ""), "/api/predictions?q=nothing-matches-this")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestPredictionDetail(t *testing.T) {
	h := newRouter(t, "")
	rr := get(t, h, "/api/predictions/P005")
	require.Equal(t, http.StatusOK, rr.Code)
	var p model.Prediction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, model.StatusInaccurateDebunked, p.Status)

	rr = get(t, h, "/api/predictions/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "not found")
}

func TestFacetsTimelineSummary(t *testing.T) {
	h := newRouter(t, "")

	var f prediction.Facets
	require.NoError(t, json.Unmarshal(get(t, h, "/api/facets").Body.Bytes(), &f))
	assert.NotContains(t, f.Statuses, "Pending")
	assert.Contains(t, f.Categories, "OpenBrain")

	var tl []struct {
		Segment  string `json:"segment"`
		Accuracy *int   `json:"accuracy"`
	}
	require.NoError(t, json.Unmarshal(get(t, h, "/api/timeline").Body.Bytes(), &tl))
	require.Len(t, tl, 6)
	assert.Equal(t, "Mid 2025", tl[0].Segment)

	var sum struct {
		Total           int `json:"total"`
		OverallAccuracy int `json:"overall_accuracy"`
	}
	require.NoError(t, json.Unmarshal(get(t, h, "/api/summary").Body.Bytes(), &sum))
	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 50, sum.OverallAccuracy)
}

func TestBlogEndpoints(t *testing.T) {
	h := newRouter(t, "")
	var posts []model.BlogPost
	require.NoError(t, json.Unmarshal(get(t, h, "/api/blog?tag=retrospective").Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "B001", posts[0].ID)

	assert.Equal(t, http.StatusOK, get(t, h, "/api/blog/B002").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/blog/B999").Code)
}

func TestThemeEndpoint(t *testing.T) {
	h := newRouter(t, "")
	rr := get(t, h, "/api/preferences/theme")
	assert.JSONEq(t, `{"theme":"light"}`, rr.Body.String())

	put := httptest.NewRequest(http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"theme":"dark"}`))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, put)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, get(t, h, "/api/preferences/theme").Body.String())

	bad := httptest.NewRequest(http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"theme":"neon"}`))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, bad)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBasePathAndMetrics(t *testing.T) {
	h := newRouter(t, "/tracker")
	assert.Equal(t, http.StatusOK, get(t, h, "/tracker/api/summary").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/summary").Code)
	assert.Equal(t, "# metrics", get(t, h, "/tracker/metrics").Body.String())
}

func TestRequestID(t *testing.T) {
	h := newRouter(t, "")
	rr := get(t, h, "/api/facets")
	_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/facets", nil)
	req.Header.Set(RequestIDHeader, id)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, id, rr.Header().Get(RequestIDHeader))
}

func TestRedirectFallback(t *testing.T) {
	cases := []struct {
		name, base, target, want string
	}{
		{"plain", "", "/?p=/timeline", "/timeline"},
		{"remaining query", "", "/?p=/prediction/P001&x=1", "/prediction/P001?x=1"},
		{"base path", "/tracker", "/tracker/?p=/blog", "/tracker/blog"},
		{"protocol relative", "", "/?p=//evil.example", "/evil.example"},
		{"backslash after slash", "", "/?p=%2F%5Cevil.example", "/evil.example"},
		{"leading backslashes", "", "/?p=%5C%5Cevil.example%2Fx", "/evil.example/x"},
		{"relative target", "", "/?p=blog", "/blog"},
		{"backslash with base", "/tracker", "/tracker/?p=%2F%5Cevil.example", "/tracker/evil.example"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := get(t, newRouter(t, c.base), c.target)
			require.Equal(t, http.StatusFound, rr.Code)
			assert.Equal(t, c.want, rr.Header().Get("Location"))
		})
	}

	// API paths ignore p.
	assert.Equal(t, http.StatusOK, get(t, newRouter(t, ""), "/api/facets?p=/timeline").Code)
}
