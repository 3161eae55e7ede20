package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/schoolrun/core/factory"
	"github.com/kilianp07/schoolrun/core/model"
)

type recordSink struct {
	predictions int
	sweeps      int
	err         error
}

func (r *recordSink) RecordPrediction(PredictionEvent) error {
	r.predictions++
	return r.err
}

func (r *recordSink) RecordSweep(SweepEvent) error {
	r.sweeps++
	return r.err
}

type predictionOnly struct{ count int }

func (p *predictionOnly) RecordPrediction(PredictionEvent) error {
	p.count++
	return nil
}

func TestNewPredictionEvent(t *testing.T) {
	now := time.Now()
	p := model.Prediction{SuccessProbability: 85}
	a := NewPredictionEvent(p, "cli", now)
	b := NewPredictionEvent(p, "cli", now)
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 85.0, a.Prediction.SuccessProbability)
	assert.Equal(t, now, a.Time)
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &predictionOnly{}
	m := NewMultiSink(s1, s2)
	require.NoError(t, m.RecordPrediction(PredictionEvent{}))
	require.NoError(t, m.RecordSweep(SweepEvent{Kind: "parent_a"}))
	assert.Equal(t, 1, s1.predictions)
	assert.Equal(t, 1, s1.sweeps)
	assert.Equal(t, 1, s2.count)
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	assert.ErrorIs(t, m.RecordPrediction(PredictionEvent{}), boom)
	assert.Equal(t, 0, s2.predictions)
}

func TestNewMetricsSink(t *testing.T) {
	require.NoError(t, RegisterMetricsSink("record-test", func(map[string]any) (MetricsSink, error) {
		return &recordSink{}, nil
	}))

	s, err := NewMetricsSink(nil)
	require.NoError(t, err)
	assert.IsType(t, NopSink{}, s)

	s, err = NewMetricsSink([]factory.ModuleConfig{{Type: "record-test"}})
	require.NoError(t, err)
	assert.IsType(t, &recordSink{}, s)

	s, err = NewMetricsSink([]factory.ModuleConfig{{Type: "record-test"}, {Type: "record-test"}})
	require.NoError(t, err)
	multi, ok := s.(*MultiSink)
	require.True(t, ok)
	assert.Len(t, multi.Sinks, 2)

	_, err = NewMetricsSink([]factory.ModuleConfig{{Type: "record-test"}, {Type: "missing"}})
	assert.ErrorIs(t, err, factory.ErrUnknownType)
}

type closingSink struct {
	recordSink
	closed int
}

func (c *closingSink) Close() { c.closed++ }

func TestNewMetricsSinkClosesOnError(t *testing.T) {
	var built []*closingSink
	require.NoError(t, RegisterMetricsSink("closing-test", func(map[string]any) (MetricsSink, error) {
		s := &closingSink{}
		built = append(built, s)
		return s, nil
	}))

	_, err := NewMetricsSink([]factory.ModuleConfig{{Type: "closing-test"}, {Type: "closing-test"}, {Type: "missing"}})
	assert.ErrorIs(t, err, factory.ErrUnknownType)
	require.Len(t, built, 2)
	for _, s := range built {
		assert.Equal(t, 1, s.closed)
	}
}

func TestMultiSinkClose(t *testing.T) {
	c := &closingSink{}
	m := NewMultiSink(c, &recordSink{}, NewMultiSink(c))
	Close(m)
	assert.Equal(t, 2, c.closed)
	Close(NopSink{})
}

func TestConfig(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.Equal(t, ":2112", c.PrometheusAddr)
	require.NoError(t, c.Validate())
	c.Sinks = []factory.ModuleConfig{{}}
	assert.Error(t, c.Validate())
}
