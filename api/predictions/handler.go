// Package predictions serves the prediction list, detail and facet endpoints.
package predictions

import (
	"net/http"

	"github.com/kilianp07/predtrack/api/respond"
	"github.com/kilianp07/predtrack/core/prediction"
	"github.com/kilianp07/predtrack/core/tracker"
)

// QueryFromRequest reads the list filters from the URL query.
func QueryFromRequest(r *http.Request) prediction.Query {
	v := r.URL.Query()
	return prediction.Query{
		Filter: prediction.Filter{
			Search:   v.Get("q"),
			Status:   v.Get("status"),
			Category: v.Get("category"),
		},
		SortBy: prediction.ParseSortKey(v.Get("sort")),
	}
}

// NewListHandler serves GET /api/predictions?q=&status=&category=&sort=.
// A query matching nothing yields an empty array.
func NewListHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, t.List(QueryFromRequest(r)))
	})
}

// NewDetailHandler serves GET /api/predictions/{id}.
func NewDetailHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := t.Prediction(r.PathValue("id"))
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, p)
	})
}

// NewFacetsHandler serves GET /api/facets.
func NewFacetsHandler(t *tracker.Tracker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, t.Facets())
	})
}
