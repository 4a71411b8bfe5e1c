package prediction

import (
	"math"
	"sort"
	"strings"

	"github.com/kilianp07/predtrack/core/model"
)

// SortKey selects the ordering of a prediction list.
type SortKey string

const (
	// SortByTimeline orders by timeline segment, then text. It is the
	// default and is exposed to users as "predictedDate".
	SortByTimeline      SortKey = "predictedDate"
	SortByAccuracy      SortKey = "accuracyScore"
	SortByLastEvaluated SortKey = "lastEvaluated"
)

// ParseSortKey maps user input to a SortKey. Unknown keys fall back to
// SortByTimeline.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.TrimSpace(s)) {
	case SortByAccuracy:
		return SortByAccuracy
	case SortByLastEvaluated:
		return SortByLastEvaluated
	default:
		return SortByTimeline
	}
}

// SortPredictions returns a sorted copy of preds. The sort is stable so
// equal keys keep their input order.
//
// For the timeline sort, segments is the rank order, usually the output of
// UniqueTimelineSegments. Segments missing from it sort after every ranked
// one, by label, and predictions without a segment come last.
func SortPredictions(preds []model.Prediction, key SortKey, segments []string) []model.Prediction {
	out := make([]model.Prediction, len(preds))
	copy(out, preds)

	switch ParseSortKey(string(key)) {
	case SortByAccuracy:
		sort.SliceStable(out, func(i, j int) bool {
			return model.SortScore(out[i]) > model.SortScore(out[j])
		})
	case SortByLastEvaluated:
		sort.SliceStable(out, func(i, j int) bool {
			return model.EffectiveDate(out[i]).After(model.EffectiveDate(out[j]))
		})
	default:
		idx := segmentIndex(segments)
		sort.SliceStable(out, func(i, j int) bool {
			a, b := idx.rank(out[i].TimelineSegment), idx.rank(out[j].TimelineSegment)
			if a != b {
				return a < b
			}
			if a == unranked && out[i].TimelineSegment != out[j].TimelineSegment {
				return out[i].TimelineSegment < out[j].TimelineSegment
			}
			return out[i].Text < out[j].Text
		})
	}
	return out
}

type segmentRanks map[string]int

func segmentIndex(segments []string) segmentRanks {
	idx := make(segmentRanks, len(segments))
	for i, s := range segments {
		if _, dup := idx[s]; !dup {
			idx[s] = i
		}
	}
	return idx
}

// unranked is the rank of a named segment absent from the ordering.
const unranked = math.MaxInt - 1

// rank is the position of s in the ordering. Unknown labels share
// unranked and an empty label ranks last.
func (r segmentRanks) rank(s string) int {
	if i, ok := r[s]; ok {
		return i
	}
	if s == "" {
		return math.MaxInt
	}
	return unranked
}
