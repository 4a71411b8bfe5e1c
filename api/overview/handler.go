// Package overview serves the timeline and summary endpoints.
package overview

import (
	"net/http"

	"github.com/kilianp07/predtrack/api/respond"
	"github.com/kilianp07/predtrack/core/tracker"
)

// NewTimelineHandler serves GET /api/timeline.
func NewTimelineHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, t.Timeline())
	})
}

// NewSummaryHandler serves GET /api/summary.
func NewSummaryHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, t.Overview())
	})
}
