// Package metrics defines the sinks that observe tracker activity. A Sink
// records each query served; sinks that also implement SummaryRecorder
// receive accuracy snapshots. Implementations such as the Prometheus and
// InfluxDB sinks live in infra/metrics and register themselves with the
// factory so they can be selected from configuration. Several configured
// sinks are combined into a MultiSink.
package metrics
