package scenarios

import (
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/predtrack/core/dataset"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/tracker"
	"github.com/kilianp07/predtrack/infra/metrics"
)

// Run evaluates sc and returns one message per mismatch. Accuracy figures
// are read back from a Prometheus registry so the metrics path is checked
// along with the engine.
func Run(sc *Scenario) ([]string, error) {
	preds, err := sc.Dataset()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		return nil, err
	}
	tr := tracker.New(&dataset.Dataset{Predictions: preds}, tracker.Options{Segments: sc.Canonical, Sink: sink})
	if err := tr.PublishSnapshot(); err != nil {
		return nil, err
	}
	gauges, err := gather(reg)
	if err != nil {
		return nil, err
	}

	var diffs []string
	mismatch := func(what string, want, got any) {
		diffs = append(diffs, fmt.Sprintf("%s: want %v, got %v", what, want, got))
	}
	exp := sc.Expected

	if got := ids(tr.List(sc.Query.ToQuery())); !equalStrings(exp.IDs, got) {
		mismatch("ids", exp.IDs, got)
	}
	if exp.OverallAccuracy != nil {
		if got := int(gauges["tracker_overall_accuracy"][""]); got != *exp.OverallAccuracy {
			mismatch("overall accuracy", *exp.OverallAccuracy, got)
		}
	}
	if exp.EvaluatedPercent != nil {
		if got := int(gauges["tracker_evaluated_percent"][""]); got != *exp.EvaluatedPercent {
			mismatch("evaluated percent", *exp.EvaluatedPercent, got)
		}
	}
	if exp.SegmentAccuracy != nil {
		got := map[string]int{}
		for seg, v := range gauges["tracker_segment_accuracy"] {
			got[seg] = int(v)
		}
		if !reflect.DeepEqual(exp.SegmentAccuracy, got) {
			mismatch("segment accuracy", exp.SegmentAccuracy, got)
		}
	}
	if exp.Segments != nil && !equalStrings(exp.Segments, tr.Segments()) {
		mismatch("segments", exp.Segments, tr.Segments())
	}
	f := tr.Facets()
	if exp.Categories != nil && !equalStrings(exp.Categories, f.Categories) {
		mismatch("categories", exp.Categories, f.Categories)
	}
	if exp.Statuses != nil && !equalStrings(exp.Statuses, f.Statuses) {
		mismatch("statuses", exp.Statuses, f.Statuses)
	}
	return diffs, nil
}

// gather returns gauge values by metric name and segment label.
func gather(reg *prometheus.Registry) (map[string]map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]map[string]float64{}
	for _, mf := range families {
		vals := map[string]float64{}
		for _, m := range mf.GetMetric() {
			if m.GetGauge() == nil {
				continue
			}
			label := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "segment" {
					label = lp.GetValue()
				}
			}
			vals[label] = m.GetGauge().GetValue()
		}
		out[mf.GetName()] = vals
	}
	return out, nil
}

func ids(preds []model.Prediction) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
