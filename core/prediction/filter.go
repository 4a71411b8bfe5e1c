package prediction

import (
	"strings"

	"github.com/kilianp07/predtrack/core/model"
)

// Filter holds the user supplied filters. Empty fields match everything.
type Filter struct {
	// Search is matched case-insensitively against the text and the
	// original scenario label.
	Search string `json:"search,omitempty"`
	// Status is compared with the effective status.
	Status string `json:"status,omitempty"`
	// Category must be one of the prediction's categories.
	Category string `json:"category,omitempty"`
}

// IsZero reports whether f matches every prediction.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Category == ""
}

// Match reports whether p satisfies all filters.
func (f Filter) Match(p model.Prediction) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Text), term) &&
			!strings.Contains(strings.ToLower(p.OriginalScenario), term) {
			return false
		}
	}
	if f.Status != "" && string(model.EffectiveStatus(p)) != f.Status {
		return false
	}
	if f.Category != "" && !p.HasCategory(f.Category) {
		return false
	}
	return true
}

// FilterPredictions returns the predictions matching f in input order.
func FilterPredictions(preds []model.Prediction, f Filter) []model.Prediction {
	out := make([]model.Prediction, 0, len(preds))
	for _, p := range preds {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
