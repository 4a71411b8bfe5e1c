package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/predtrack/core/metrics"
	"github.com/kilianp07/predtrack/infra/logger"
)

// InfluxSink writes tracker activity to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordQuery writes one tracker_query point.
func (s *InfluxSink) RecordQuery(ev coremetrics.QueryEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("tracker_query").
		AddTag("view", ev.View).
		AddField("results", ev.Results).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(eventTime(ev.Time))
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSummary writes a tracker_summary point and one tracker_segment
// point per scored segment in a single request.
func (s *InfluxSink) RecordSummary(snap coremetrics.SummarySnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ts := eventTime(snap.Time)
	points := make([]*write.Point, 0, 1+len(snap.Segments))
	points = append(points, write.NewPointWithMeasurement("tracker_summary").
		AddField("total", snap.Total).
		AddField("evaluated", snap.Evaluated).
		AddField("evaluated_percent", snap.EvaluatedPercent).
		AddField("overall_accuracy", snap.OverallAccuracy).
		SetTime(ts))
	for _, seg := range snap.Segments {
		points = append(points, write.NewPointWithMeasurement("tracker_segment").
			AddTag("segment", seg.Segment).
			AddField("accuracy", seg.Accuracy).
			SetTime(ts))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// Close releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func eventTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
