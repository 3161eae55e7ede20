package fuzzy

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDomain(t *testing.T) {
	d, err := NewDomain(0, 120, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1201, d.Len())
	assert.Equal(t, 0.0, d.Points[0])
	assert.Equal(t, 120.0, d.Points[d.Len()-1])
	assert.InDelta(t, 60.0, d.Points[600], 1e-9)

	for _, tc := range []struct{ min, max, step float64 }{
		{1, 1, 0.1},
		{2, 1, 0.1},
		{0, 1, 0},
		{0, 1, -1},
		{0, math.NaN(), 0.1},
	} {
		_, err := NewDomain(tc.min, tc.max, tc.step)
		assert.True(t, errors.Is(err, ErrDomain), "domain %+v", tc)
	}
}

func TestShapeAt(t *testing.T) {
	trap, err := Trap(0, 2, 4, 8)
	require.NoError(t, err)
	cases := map[float64]float64{
		-1: 0, 0: 0, 1: 0.5, 2: 1, 3: 1, 4: 1, 6: 0.5, 8: 0, 9: 0,
	}
	for x, want := range cases {
		assert.InDelta(t, want, trap.At(x), 1e-12, "trap at %v", x)
	}

	tri, err := Tri(10, 20, 30)
	require.NoError(t, err)
	assert.Equal(t, KindTriangle, tri.Kind)
	assert.InDelta(t, 0.0, tri.At(10), 1e-12)
	assert.InDelta(t, 0.5, tri.At(15), 1e-12)
	assert.InDelta(t, 1.0, tri.At(20), 1e-12)
	assert.InDelta(t, 0.25, tri.At(27.5), 1e-12)
	assert.InDelta(t, 0.0, tri.At(30), 1e-12)
}

func TestShapeDegenerateRamps(t *testing.T) {
	left, err := Trap(5.5, 5.5, 6.0, 6.25)
	require.NoError(t, err)
	assert.Equal(t, 1.0, left.At(5.5))
	assert.Equal(t, 0.0, left.At(5.49))

	right, err := Trap(7.0, 7.5, 8.5, 8.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, right.At(8.5))
	assert.Equal(t, 0.0, right.At(8.51))

	spike, err := Tri(1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, spike.At(1))
	assert.Equal(t, 0.0, spike.At(1.0001))
	assert.False(t, math.IsNaN(spike.At(0.9999)))
}

func TestShapeBreakpointOrder(t *testing.T) {
	_, err := Trap(0, 3, 2, 4)
	assert.ErrorIs(t, err, ErrBreakpoints)
	_, err = Tri(3, 2, 1)
	assert.ErrorIs(t, err, ErrBreakpoints)
}

func TestSampledShapes(t *testing.T) {
	d := MustDomain(0, 10, 1)
	assert.Equal(t, []float64{0, 0.5, 1, 1, 1, 0.5, 0, 0, 0, 0, 0}, Trapezoid(d, 0, 2, 4, 6))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0.5, 1, 0.5}, Triangle(d, 7, 9, 11))
}

func TestInterp(t *testing.T) {
	d := MustDomain(0, 4, 1)
	shape := []float64{0, 1, 0.5, 0.5, 0}
	assert.Equal(t, 0.0, Interp(d, shape, 0))
	assert.Equal(t, 1.0, Interp(d, shape, 1))
	assert.InDelta(t, 0.75, Interp(d, shape, 1.5), 1e-12)
	assert.InDelta(t, 0.25, Interp(d, shape, 3.5), 1e-12)
	// clamped to the edges
	assert.Equal(t, 0.0, Interp(d, shape, -3))
	assert.Equal(t, 0.0, Interp(d, shape, 12))
	assert.Equal(t, 0.0, Interp(d, shape, math.NaN()))
	assert.Equal(t, 0.0, Interp(d, shape[:2], 1))
}

func TestInterpEdgeValuesHeld(t *testing.T) {
	d := MustDomain(5.5, 8.5, 0.01)
	veryEarly := Trapezoid(d, 5.5, 5.5, 6.0, 6.25)
	late := Trapezoid(d, 7.0, 7.5, 8.5, 8.5)
	assert.Equal(t, 1.0, Interp(d, veryEarly, 5.0))
	assert.Equal(t, 1.0, Interp(d, late, 9.0))
	assert.Equal(t, 0.0, Interp(d, late, 5.0))
}
