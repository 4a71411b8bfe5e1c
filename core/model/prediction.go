package model

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Status is the evaluation state of a prediction as stored in the dataset.
type Status string

const (
	// StatusPending is the effective label of a prediction without a status.
	StatusPending Status = "Pending"

	StatusPendingEvaluation    Status = "Pending Evaluation"
	StatusInProgressMonitoring Status = "In Progress / Monitoring"
	StatusConfirmedAccurate    Status = "Confirmed Accurate"
	StatusPartiallyAccurate    Status = "Partially Accurate"
	StatusInaccurateDebunked   Status = "Inaccurate / Debunked"
	StatusTooEarlyToTell       Status = "Too Early to Tell / Not Yet Assessable"
)

func (s Status) String() string { return string(s) }

// Evaluated reports whether the status counts as an evaluation outcome.
// Pending and too-early statuses are not evaluated; monitoring is.
func (s Status) Evaluated() bool {
	switch s {
	case "", StatusPending, StatusPendingEvaluation, StatusTooEarlyToTell:
		return false
	default:
		return true
	}
}

// Evidence is a citation supporting an outcome.
type Evidence struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// Commentary is one analyst log entry.
type Commentary struct {
	Date    string `json:"date" yaml:"date"`
	Comment string `json:"comment" yaml:"comment"`
}

// Prediction is a single trackable claim with its evaluation metadata.
type Prediction struct {
	ID                  string       `json:"id" yaml:"id"`
	Text                string       `json:"text" yaml:"text"`
	OriginalScenario    string       `json:"originalScenario" yaml:"originalScenario"`
	PredictedDate       string       `json:"predictedDate" yaml:"predictedDate"`
	TimelineSegment     string       `json:"timelineSegment" yaml:"timelineSegment"`
	Categories          []string     `json:"categories" yaml:"categories"`
	Status              Status       `json:"status,omitempty" yaml:"status,omitempty"`
	AccuracyScore       *float64     `json:"accuracyScore" yaml:"accuracyScore"`
	QualitativeAccuracy string       `json:"qualitativeAccuracy,omitempty" yaml:"qualitativeAccuracy,omitempty"`
	ActualOutcome       string       `json:"actualOutcome,omitempty" yaml:"actualOutcome,omitempty"`
	SupportingEvidence  []Evidence   `json:"supportingEvidence" yaml:"supportingEvidence"`
	AnalystCommentary   []Commentary `json:"analystCommentary" yaml:"analystCommentary"`
	LastEvaluated       string       `json:"lastEvaluated,omitempty" yaml:"lastEvaluated,omitempty"`
}

// BlogPost is an article published alongside the tracker.
type BlogPost struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Date    string   `json:"date" yaml:"date"`
	Author  string   `json:"author" yaml:"author"`
	Summary string   `json:"summary" yaml:"summary"`
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags" yaml:"tags"`
}

// Score returns s as an accuracy score pointer.
func Score(s float64) *float64 { return &s }

// EffectiveStatus returns the status used for filtering, facets and
// aggregation. An absent status is StatusPending.
func EffectiveStatus(p Prediction) Status {
	if strings.TrimSpace(string(p.Status)) == "" {
		return StatusPending
	}
	return p.Status
}

// EffectiveScore returns the accuracy score and whether one is set.
func EffectiveScore(p Prediction) (float64, bool) {
	if p.AccuracyScore == nil {
		return 0, false
	}
	return *p.AccuracyScore, true
}

// SortScore is the accuracy sort key: -1 for unscored predictions so they
// rank below any valid score.
func SortScore(p Prediction) float64 {
	if s, ok := EffectiveScore(p); ok {
		return s
	}
	return -1
}

// EffectiveDate parses LastEvaluated. Empty or unparseable values resolve
// to the zero time, which is earlier than any parseable date.
func EffectiveDate(p Prediction) time.Time {
	if t, ok := ParseDate(p.LastEvaluated); ok {
		return t
	}
	return time.Time{}
}

// ParseDate parses a loosely formatted date string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a date for display. Empty input yields "N/A" and
// unparseable input is returned unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("January 2, 2006")
}

// HasCategory reports whether the prediction is tagged with c.
func (p Prediction) HasCategory(c string) bool {
	for _, cat := range p.Categories {
		if cat == c {
			return true
		}
	}
	return false
}
