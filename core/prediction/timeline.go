package prediction

import (
	"sort"
	"strings"

	"github.com/kilianp07/predtrack/core/model"
)

// CanonicalSegments is the default chronological order of timeline labels.
var CanonicalSegments = []string{
	"Mid 2025", "Late 2025", "Early 2026", "Mid 2026", "Late 2026",
	"January 2027", "February 2027", "March 2027", "April 2027", "May 2027",
	"June 2027", "July 2027", "August 2027", "September 2027", "October 2027",
}

// UniqueTimelineSegments returns the distinct non-empty segments present in
// preds ordered by their position in canonical. Segments missing from
// canonical come last in lexicographic order.
func UniqueTimelineSegments(preds []model.Prediction, canonical []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range preds {
		s := p.TimelineSegment
		if strings.TrimSpace(s) == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	idx := segmentIndex(canonical)
	sort.Slice(out, func(i, j int) bool {
		a, aok := idx[out[i]]
		b, bok := idx[out[j]]
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		case bok:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// SegmentGroup holds the predictions of one timeline segment.
type SegmentGroup struct {
	Segment     string             `json:"segment"`
	Predictions []model.Prediction `json:"predictions"`
	// Accuracy is nil when no prediction in the segment is scored.
	Accuracy *int `json:"accuracy"`
}

// Timeline is an ordered grouping of predictions by segment.
type Timeline []SegmentGroup

// Segment returns the predictions grouped under label.
func (t Timeline) Segment(label string) ([]model.Prediction, bool) {
	for _, g := range t {
		if g.Segment == label {
			return g.Predictions, true
		}
	}
	return nil, false
}

// Labels returns the segment labels in order.
func (t Timeline) Labels() []string {
	out := make([]string, len(t))
	for i, g := range t {
		out[i] = g.Segment
	}
	return out
}

// GroupByTimelineSegment groups preds under each label of segments, in the
// given order. Labels without predictions are present with an empty slice.
func GroupByTimelineSegment(preds []model.Prediction, segments []string) Timeline {
	out := make(Timeline, 0, len(segments))
	for _, s := range segments {
		group := []model.Prediction{}
		for _, p := range preds {
			if p.TimelineSegment == s {
				group = append(group, p)
			}
		}
		out = append(out, SegmentGroup{Segment: s, Predictions: group})
	}
	return out
}

// BuildTimeline groups preds by segment and annotates each group with its
// accuracy.
func BuildTimeline(preds []model.Prediction, segments []string) Timeline {
	t := GroupByTimelineSegment(preds, segments)
	for i := range t {
		if acc, ok := SegmentAccuracy(t[i].Predictions); ok {
			t[i].Accuracy = &acc
		}
	}
	return t
}
