// Package api mounts the read-only JSON endpoints of the tracker.
package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/predtrack/api/blog"
	"github.com/kilianp07/predtrack/api/overview"
	"github.com/kilianp07/predtrack/api/predictions"
	"github.com/kilianp07/predtrack/api/preferences"
	"github.com/kilianp07/predtrack/core/logger"
	"github.com/kilianp07/predtrack/core/navigation"
	corepref "github.com/kilianp07/predtrack/core/preferences"
	"github.com/kilianp07/predtrack/core/tracker"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// Deps are the collaborators of the router. Prefs and Metrics are optional.
type Deps struct {
	Tracker *tracker.Tracker
	Prefs   *corepref.Service
	Metrics http.Handler
	Log     logger.Logger
	// BasePath prefixes every route, e.g. "/tracker".
	BasePath string
	// WriteToken guards preference updates when set.
	WriteToken string
}

// NewRouter returns the HTTP handler serving the API.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/predictions", predictions.NewListHandler(d.Tracker))
	mux.Handle("GET /api/predictions/{id}", predictions.NewDetailHandler(d.Tracker))
	mux.Handle("GET /api/facets", predictions.NewFacetsHandler(d.Tracker))
	mux.Handle("GET /api/timeline", overview.NewTimelineHandler(d.Tracker))
	mux.Handle("GET /api/summary", overview.NewSummaryHandler(d.Tracker))
	mux.Handle("GET /api/blog", blog.NewListHandler(d.Tracker))
	mux.Handle("GET /api/blog/{id}", blog.NewPostHandler(d.Tracker))
	if d.Prefs != nil {
		mux.Handle("/api/preferences/theme", preferences.NewThemeHandler(d.Prefs, d.WriteToken))
	}
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	base := strings.TrimSuffix(d.BasePath, "/")
	var h http.Handler = mux
	if base != "" {
		h = http.StripPrefix(base, mux)
	}
	h = redirect(base, h)
	return requestLog(d.Log, h)
}

// redirect resolves the ?p= fallback used by static hosts that route every
// unknown path to a single page. API and metrics paths are never redirected.
func redirect(base string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, base)
		if strings.HasPrefix(p, "/api/") || p == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		target, ok := navigation.ResolveRedirect(r.URL)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, base+sameSite(target), http.StatusFound)
	})
}

// sameSite reduces target to a path on this host. Browsers read a
// backslash as a slash, so leading runs of either would name another
// host and are collapsed to a single slash.
func sameSite(target string) string {
	target = "/" + strings.TrimLeft(strings.ReplaceAll(target, `\`, "/"), "/")
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	out := u.EscapedPath()
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLog(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		if log == nil {
			return
		}
		logger.Fields(log, map[string]any{"request_id": id}).Debugw("served request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
