package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/schoolrun/core/model"
)

// PredictionEvent is one evaluated prediction.
type PredictionEvent struct {
	ID         string
	Prediction model.Prediction
	Source     string
	Time       time.Time
}

// NewPredictionEvent stamps p with a fresh ID.
func NewPredictionEvent(p model.Prediction, source string, at time.Time) PredictionEvent {
	return PredictionEvent{ID: uuid.NewString(), Prediction: p, Source: source, Time: at}
}

// MetricsSink records predictions for observability purposes.
type MetricsSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// SweepEvent summarises a completed sensitivity sweep.
type SweepEvent struct {
	ID       string
	Kind     string
	Points   int
	Duration time.Duration
	Time     time.Time
}

// SweepRecorder records sweep summaries.
type SweepRecorder interface {
	RecordSweep(ev SweepEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error { return nil }
func (NopSink) RecordSweep(SweepEvent) error           { return nil }
