package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrap(t *testing.T, a, b, c, d float64) Shape {
	t.Helper()
	s, err := Trap(a, b, c, d)
	require.NoError(t, err)
	return s
}

func mustTri(t *testing.T, a, b, c float64) Shape {
	t.Helper()
	s, err := Tri(a, b, c)
	require.NoError(t, err)
	return s
}

// tipSystem is a two-input toy: service and food quality drive a tip.
func tipSystem(t *testing.T) *System {
	t.Helper()
	service := NewVariable("service", MustDomain(0, 10, 0.1))
	require.NoError(t, service.AddTerm("poor", mustTrap(t, 0, 0, 2, 4)))
	require.NoError(t, service.AddTerm("good", mustTrap(t, 6, 8, 10, 10)))

	food := NewVariable("food", MustDomain(0, 10, 0.1))
	require.NoError(t, food.AddTerm("bad", mustTri(t, 0, 0, 4)))
	require.NoError(t, food.AddTerm("great", mustTri(t, 6, 10, 10)))

	tip := NewVariable("tip", MustDomain(0, 30, 0.1))
	require.NoError(t, tip.AddTerm("low", mustTri(t, 0, 5, 10)))
	require.NoError(t, tip.AddTerm("high", mustTri(t, 20, 25, 30)))

	sys := NewSystem(tip, 15, service, food)
	require.NoError(t, sys.AddRule(Rule{Name: "r1", If: Or(Is("service", "poor"), Is("food", "bad")), Then: "low"}))
	require.NoError(t, sys.AddRule(Rule{Name: "r2", If: And(Is("service", "good"), Is("food", "great")), Then: "high"}))
	return sys
}

func TestSystemInferSingleRule(t *testing.T) {
	sys := tipSystem(t)
	res, err := sys.Infer(map[string]float64{"service": 1, "food": 3})
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.InDelta(t, 5.0, res.Value, 1e-6)
	assert.Equal(t, []float64{1, 0}, res.Firing)
}

func TestSystemInferClippedConsequents(t *testing.T) {
	sys := tipSystem(t)
	res, err := sys.Infer(map[string]float64{"service": 10, "food": 10})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, res.Value, 1e-6)
	for _, mu := range res.Aggregate {
		assert.LessOrEqual(t, mu, 1.0)
	}

	// r2 fires at 0.25 so the aggregate is clipped at that height.
	res, err = sys.Infer(map[string]float64{"service": 6.5, "food": 10})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Firing[1], 1e-9)
	max := 0.0
	for _, mu := range res.Aggregate {
		if mu > max {
			max = mu
		}
	}
	assert.InDelta(t, 0.25, max, 1e-9)
	assert.InDelta(t, 25.0, res.Value, 1e-6)
}

func TestSystemInferFallback(t *testing.T) {
	sys := tipSystem(t)
	// service 5 and food 5 fall between the terms
	res, err := sys.Infer(map[string]float64{"service": 5, "food": 5})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, 15.0, res.Value)
}

func TestSystemInferInputErrors(t *testing.T) {
	sys := tipSystem(t)
	_, err := sys.Infer(map[string]float64{"service": 5})
	assert.ErrorIs(t, err, ErrMissingInput)

	nan := 0.0
	nan /= nan
	_, err = sys.Infer(map[string]float64{"service": nan, "food": 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSystemAddRuleValidation(t *testing.T) {
	sys := tipSystem(t)
	err := sys.AddRule(Rule{Name: "x", If: Is("ambience", "nice"), Then: "low"})
	assert.ErrorIs(t, err, ErrUnknownVariable)
	err = sys.AddRule(Rule{Name: "x", If: Is("food", "ok"), Then: "low"})
	assert.ErrorIs(t, err, ErrUnknownTerm)
	err = sys.AddRule(Rule{Name: "x", If: Is("food", "bad"), Then: "huge"})
	assert.ErrorIs(t, err, ErrUnknownTerm)
	err = sys.AddRule(Rule{Name: "x", Then: "low"})
	assert.Error(t, err)
	assert.Len(t, sys.Rules(), 2)
}

func TestVariableTerms(t *testing.T) {
	v := NewVariable("v", MustDomain(0, 1, 0.5))
	require.NoError(t, v.AddTerm("a", mustTri(t, 0, 0, 1)))
	assert.ErrorIs(t, v.AddTerm("a", mustTri(t, 0, 1, 1)), ErrDuplicateTerm)
	assert.Equal(t, []string{"a"}, v.Terms())

	s, err := v.Sampled("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0}, s)
	s[0] = 42
	again, _ := v.Sampled("a")
	assert.Equal(t, 1.0, again[0])

	_, err = v.Membership("b", 0)
	assert.ErrorIs(t, err, ErrUnknownTerm)
	m, err := v.Membership("a", 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, m, 1e-12)
}

func TestRuleString(t *testing.T) {
	r := Rule{Name: "r", If: And(Is("a", "x"), Or(Is("b", "y"), Is("c", "z"))), Then: "out"}
	assert.Equal(t, "r: IF (a=x AND (b=y OR c=z)) THEN out", r.String())
}

func TestCentroid(t *testing.T) {
	d := MustDomain(0, 10, 0.1)
	c, ok := Centroid(d, Triangle(d, 2, 5, 8))
	assert.True(t, ok)
	assert.InDelta(t, 5.0, c, 1e-9)

	_, ok = Centroid(d, make([]float64, d.Len()))
	assert.False(t, ok)
	_, ok = Centroid(d, []float64{1})
	assert.False(t, ok)
}
