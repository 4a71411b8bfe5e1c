package prediction

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/predtrack/core/model"
)

// RecentlyEvaluatedLimit is the number of predictions in the home summary.
const RecentlyEvaluatedLimit = 3

// roundHalfUp rounds x to the nearest integer, halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func meanScore(preds []model.Prediction) (int, bool) {
	var scores []float64
	for _, p := range preds {
		if s, ok := model.EffectiveScore(p); ok {
			scores = append(scores, s)
		}
	}
	if len(scores) == 0 {
		return 0, false
	}
	return roundHalfUp(stat.Mean(scores, nil)), true
}

// SegmentAccuracy returns the rounded mean score of the scored predictions.
// ok is false when none is scored.
func SegmentAccuracy(preds []model.Prediction) (int, bool) {
	return meanScore(preds)
}

// OverallAccuracy returns the rounded mean score over preds, or 0 when no
// prediction is scored.
func OverallAccuracy(preds []model.Prediction) int {
	acc, _ := meanScore(preds)
	return acc
}

// EvaluatedCount counts predictions whose effective status is an
// evaluation outcome.
func EvaluatedCount(preds []model.Prediction) int {
	n := 0
	for _, p := range preds {
		if model.EffectiveStatus(p).Evaluated() {
			n++
		}
	}
	return n
}

// EvaluatedPercent returns the rounded share of evaluated predictions, or 0
// for an empty collection.
func EvaluatedPercent(preds []model.Prediction) int {
	if len(preds) == 0 {
		return 0
	}
	return roundHalfUp(float64(EvaluatedCount(preds)) / float64(len(preds)) * 100)
}

// RecentlyEvaluated returns up to limit predictions with an evaluation
// date, newest first.
func RecentlyEvaluated(preds []model.Prediction, limit int) []model.Prediction {
	out := make([]model.Prediction, 0, len(preds))
	for _, p := range preds {
		if p.LastEvaluated != "" {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.EffectiveDate(out[i]).After(model.EffectiveDate(out[j]))
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summary aggregates the headline figures of a prediction collection.
type Summary struct {
	Total             int                `json:"total"`
	Evaluated         int                `json:"evaluated"`
	EvaluatedPercent  int                `json:"evaluated_percent"`
	OverallAccuracy   int                `json:"overall_accuracy"`
	RecentlyEvaluated []model.Prediction `json:"recently_evaluated"`
}

// Summarize computes the Summary of preds.
func Summarize(preds []model.Prediction) Summary {
	return Summary{
		Total:             len(preds),
		Evaluated:         EvaluatedCount(preds),
		EvaluatedPercent:  EvaluatedPercent(preds),
		OverallAccuracy:   OverallAccuracy(preds),
		RecentlyEvaluated: RecentlyEvaluated(preds, RecentlyEvaluatedLimit),
	}
}
