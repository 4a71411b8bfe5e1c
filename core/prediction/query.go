package prediction

import (
	"fmt"

	"github.com/kilianp07/predtrack/core/model"
)

// Query combines the filters and ordering of a prediction list.
type Query struct {
	Filter
	SortBy SortKey `json:"sort_by,omitempty"`
}

// Key returns a stable string identifying q.
func (q Query) Key() string {
	return fmt.Sprintf("%q|%q|%q|%s", q.Search, q.Status, q.Category, ParseSortKey(string(q.SortBy)))
}

// Apply filters preds with q and sorts the result. segments is the timeline
// order used by the default sort.
func Apply(preds []model.Prediction, q Query, segments []string) []model.Prediction {
	return SortPredictions(FilterPredictions(preds, q.Filter), q.SortBy, segments)
}

// Facets lists the filter options derived from a collection.
type Facets struct {
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
}

// DeriveFacets computes the category and status facets of preds.
func DeriveFacets(preds []model.Prediction) Facets {
	return Facets{Categories: CategoryFacet(preds), Statuses: StatusFacet(preds)}
}
