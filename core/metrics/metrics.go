package metrics

import "time"

// Views identify the read path that served a query.
const (
	ViewList     = "list"
	ViewDetail   = "detail"
	ViewFacets   = "facets"
	ViewTimeline = "timeline"
	ViewSummary  = "summary"
	ViewBlog     = "blog"
)

// QueryEvent describes one served read.
type QueryEvent struct {
	View     string
	Results  int
	Duration time.Duration
	Time     time.Time
}

// Sink records tracker queries for observability purposes.
type Sink interface {
	RecordQuery(ev QueryEvent) error
}

// SegmentAccuracy is the accuracy of one timeline segment. Segments without
// scored predictions are omitted from snapshots.
type SegmentAccuracy struct {
	Segment  string
	Accuracy int
}

// SummarySnapshot captures the aggregate accuracy of the collection.
type SummarySnapshot struct {
	Total            int
	Evaluated        int
	EvaluatedPercent int
	OverallAccuracy  int
	Segments         []SegmentAccuracy
	Time             time.Time
}

// SummaryRecorder is implemented by sinks able to record summary snapshots.
type SummaryRecorder interface {
	RecordSummary(s SummarySnapshot) error
}

// NopSink implements Sink and SummaryRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordQuery(QueryEvent) error        { return nil }
func (NopSink) RecordSummary(SummarySnapshot) error { return nil }
