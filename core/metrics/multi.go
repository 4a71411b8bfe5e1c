package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordQuery forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordQuery(ev QueryEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordQuery(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSummary forwards snapshots to the sinks that support them.
func (m *MultiSink) RecordSummary(snap SummarySnapshot) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SummaryRecorder); ok {
			if err := rec.RecordSummary(snap); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink holding resources.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
