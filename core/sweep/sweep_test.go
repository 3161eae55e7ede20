package sweep

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/schoolrun/core/commute"
	"github.com/kilianp07/schoolrun/core/model"
)

func newEngine(t *testing.T) *commute.Engine {
	t.Helper()
	e, err := commute.NewEngine(commute.DefaultConfig(), nil)
	require.NoError(t, err)
	return e
}

type failing struct{}

func (failing) Predict(model.Input) (model.Prediction, error) {
	return model.Prediction{}, errors.New("boom")
}

func TestRange(t *testing.T) {
	r, err := Range(5.5, 8.5, 0.25)
	require.NoError(t, err)
	assert.Len(t, r, 13)
	assert.Equal(t, 5.5, r[0])
	assert.Equal(t, 8.5, r[12])
	assert.InDelta(t, 5.75, r[1], 1e-12)

	r, err = Range(0, 10, 1)
	require.NoError(t, err)
	assert.Len(t, r, 11)

	r, err = Range(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, r)

	_, err = Range(0, 1, 0)
	assert.Error(t, err)
	_, err = Range(2, 1, 0.5)
	assert.Error(t, err)
}

func TestParentSweeps(t *testing.T) {
	e := newEngine(t)
	for _, f := range []func(Predictor) (Series, error){ParentA, ParentB} {
		s, err := f(e)
		require.NoError(t, err)
		require.Len(t, s.Points, 13)
		assert.Equal(t, model.WakeMin, s.Points[0].X)
		assert.Equal(t, model.WakeMax, s.Points[12].X)
		for _, y := range s.Ys() {
			assert.True(t, y >= 0 && y <= 100)
		}
	}
}

func TestWeatherSweeps(t *testing.T) {
	e := newEngine(t)
	s, err := Weather(e)
	require.NoError(t, err)
	require.Len(t, s.Points, 5)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, s.Xs())
	assert.Equal(t, "heavy_rain", s.Points[3].Label)
	assert.InDelta(t, 85, s.Points[2].Y, 1e-9)
	assert.InDelta(t, 30, s.Points[3].Y, 1e-9)

	m, err := WeatherMultipliers(e)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 1.0, 1.2, 1.6, 2.2}, m.Ys())
}

func TestWakeGrid(t *testing.T) {
	e := newEngine(t)
	g, err := WakeGrid(e)
	require.NoError(t, err)
	require.Len(t, g.Values, 13)
	for i, row := range g.Values {
		require.Len(t, row, 13)
		for j, v := range row {
			pr, err := e.Predict(weekdayClear(g.A[i], g.B[j]))
			require.NoError(t, err)
			assert.Equal(t, pr.SuccessProbability, v)
		}
	}
}

func TestRunDurations(t *testing.T) {
	e := newEngine(t)
	ss, err := RunDurations(e)
	require.NoError(t, err)
	require.Len(t, ss, len(RunWeathers))
	for _, s := range ss {
		assert.Len(t, s.Points, 31)
		for _, y := range s.Ys() {
			assert.True(t, y >= 0 && y <= commute.RunMaxMinutes)
		}
	}
	assert.Equal(t, "run_duration_heavy_rain", ss[2].Name)
	// bad weather never leaves time for a long run
	for _, y := range ss[2].Ys() {
		assert.Less(t, y, 10.0)
	}
}

func TestAvailability(t *testing.T) {
	e := newEngine(t)
	ss, err := Availability(e)
	require.NoError(t, err)
	require.Len(t, ss, 2)
	base, final := ss[0], ss[1]
	require.Equal(t, len(base.Points), len(final.Points))
	assert.InDelta(t, 8.5, base.Points[0].Y, 1e-12)
	for i := range base.Points {
		assert.LessOrEqual(t, final.Points[i].Y, base.Points[i].Y)
	}
}

func TestRoutine(t *testing.T) {
	ss := Routine()
	require.Len(t, ss, 2)
	assert.Len(t, ss[0].Points, 11)
	assert.Equal(t, 40.0, ss[0].Points[0].Y)
	assert.Equal(t, 15.0, ss[0].Points[10].Y)
	assert.Equal(t, 36.0, ss[1].Points[0].Y)
	assert.Equal(t, 13.0, ss[1].Points[10].Y)
}

func TestRun(t *testing.T) {
	e := newEngine(t)
	for _, k := range Kinds {
		res, err := Run(e, k)
		require.NoError(t, err, k)
		assert.Equal(t, k, res.Kind)
		assert.Positive(t, res.Points(), k)
		if k == KindGrid {
			require.NotNil(t, res.Grid)
			assert.Equal(t, 169, res.Points())
		}
	}
	_, err := Run(e, "nope")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = Run(failing{}, KindParentA)
	assert.Error(t, err)
	_, err = Run(failing{}, KindGrid)
	assert.Error(t, err)
	// routine curves do not need a predictor
	_, err = Run(failing{}, KindRoutine)
	assert.NoError(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("grid")
	require.NoError(t, err)
	assert.Equal(t, KindGrid, k)
	_, err = ParseKind("heatmap")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
