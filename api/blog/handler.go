// Package blog serves the blog endpoints.
package blog

import (
	"net/http"

	"github.com/kilianp07/predtrack/api/respond"
	"github.com/kilianp07/predtrack/core/tracker"
)

// NewListHandler serves GET /api/blog?tag=, newest first.
func NewListHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, t.Posts(r.URL.Query().Get("tag")))
	})
}

// NewPostHandler serves GET /api/blog/{id}.
func NewPostHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := t.Post(r.PathValue("id"))
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, p)
	})
}
