package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/predtrack/core/metrics"
)

// PromSink records tracker activity in Prometheus metrics.
type PromSink struct {
	queries  *prometheus.CounterVec
	results  *prometheus.HistogramVec
	latency  *prometheus.HistogramVec
	overall  prometheus.Gauge
	percent  prometheus.Gauge
	segments *prometheus.GaugeVec
}

// NewPromSink registers tracker metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_queries_total",
			Help: "Total number of tracker queries served",
		}, []string{"view"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_query_results",
			Help:    "Number of records returned per query",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"view"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracker_query_duration_seconds",
			Help:    "Time spent computing a query",
			Buckets: prometheus.DefBuckets,
		}, []string{"view"}),
		overall: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_overall_accuracy",
			Help: "Mean accuracy score over all scored predictions",
		}),
		percent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_evaluated_percent",
			Help: "Percentage of predictions with an evaluated status",
		}),
		segments: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tracker_segment_accuracy",
			Help: "Mean accuracy score per timeline segment",
		}, []string{"segment"}),
	}
	var err error
	if s.queries, err = register(reg, s.queries); err != nil {
		return nil, err
	}
	if s.results, err = register(reg, s.results); err != nil {
		return nil, err
	}
	if s.latency, err = register(reg, s.latency); err != nil {
		return nil, err
	}
	if s.overall, err = register(reg, s.overall); err != nil {
		return nil, err
	}
	if s.percent, err = register(reg, s.percent); err != nil {
		return nil, err
	}
	if s.segments, err = register(reg, s.segments); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordQuery counts the query and observes its result size and duration.
func (s *PromSink) RecordQuery(ev coremetrics.QueryEvent) error {
	s.queries.WithLabelValues(ev.View).Inc()
	s.results.WithLabelValues(ev.View).Observe(float64(ev.Results))
	s.latency.WithLabelValues(ev.View).Observe(ev.Duration.Seconds())
	return nil
}

// RecordSummary sets the accuracy gauges. Segment gauges are replaced so
// segments that lost their scores disappear.
func (s *PromSink) RecordSummary(snap coremetrics.SummarySnapshot) error {
	s.overall.Set(float64(snap.OverallAccuracy))
	s.percent.Set(float64(snap.EvaluatedPercent))
	s.segments.Reset()
	for _, seg := range snap.Segments {
		s.segments.WithLabelValues(seg.Segment).Set(float64(seg.Accuracy))
	}
	return nil
}
