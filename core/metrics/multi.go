package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSweep forwards sweep summaries to the sinks that support them.
func (m *MultiSink) RecordSweep(ev SweepEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SweepRecorder); ok {
			if err := rec.RecordSweep(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		Close(s)
	}
}
