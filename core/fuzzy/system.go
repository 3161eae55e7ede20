package fuzzy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrMissingInput is returned when Infer lacks a value for a declared input.
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidInput is returned for NaN or infinite input values.
	ErrInvalidInput = errors.New("invalid input value")
)

// Result is the outcome of one inference call.
type Result struct {
	// Value is the defuzzified output clamped to the output domain.
	Value float64
	// Fallback is true when no rule fired and Value is the system default.
	Fallback bool
	// Firing holds each rule's firing degree in rule order.
	Firing []float64
	// Aggregate is the max-min aggregated output set over the output domain.
	Aggregate []float64
}

// System is a Mamdani inference system with a single output variable.
type System struct {
	inputs   map[string]*Variable
	order    []string
	output   *Variable
	rules    []Rule
	fallback float64
}

// NewSystem creates a system. fallback is returned when no rule fires.
func NewSystem(output *Variable, fallback float64, inputs ...*Variable) *System {
	s := &System{
		inputs:   make(map[string]*Variable, len(inputs)),
		output:   output,
		fallback: fallback,
	}
	for _, v := range inputs {
		s.inputs[v.Name] = v
		s.order = append(s.order, v.Name)
	}
	return s
}

// AddRule validates the rule references and appends it to the rule table.
func (s *System) AddRule(r Rule) error {
	if r.If == nil {
		return fmt.Errorf("rule %s: empty antecedent", r.Name)
	}
	if err := r.If.check(s.inputs); err != nil {
		return fmt.Errorf("rule %s: %w", r.Name, err)
	}
	if !s.output.Has(r.Then) {
		return fmt.Errorf("rule %s: %w: %s.%s", r.Name, ErrUnknownTerm, s.output.Name, r.Then)
	}
	s.rules = append(s.rules, r)
	return nil
}

// Rules returns a copy of the rule table.
func (s *System) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Output returns the output variable.
func (s *System) Output() *Variable { return s.output }

// Input returns a declared input variable.
func (s *System) Input(name string) (*Variable, bool) {
	v, ok := s.inputs[name]
	return v, ok
}

// Fuzzify computes term degrees for every declared input.
func (s *System) Fuzzify(in map[string]float64) (Degrees, error) {
	deg := make(Degrees, len(s.inputs))
	for _, name := range s.order {
		x, ok := in[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, name)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidInput, name, x)
		}
		deg[name] = s.inputs[name].Fuzzify(x)
	}
	return deg, nil
}

// Infer evaluates every rule, aggregates the clipped consequents by maximum
// and defuzzifies by centroid.
func (s *System) Infer(in map[string]float64) (Result, error) {
	deg, err := s.Fuzzify(in)
	if err != nil {
		return Result{}, err
	}
	agg := make([]float64, s.output.Domain.Len())
	firing := make([]float64, len(s.rules))
	for i, r := range s.rules {
		f := r.If.Eval(deg)
		firing[i] = f
		if f <= 0 {
			continue
		}
		for j, mu := range s.output.sampled(r.Then) {
			if c := math.Min(f, mu); c > agg[j] {
				agg[j] = c
			}
		}
	}
	res := Result{Firing: firing, Aggregate: agg}
	c, ok := Centroid(s.output.Domain, agg)
	if !ok {
		res.Value = s.fallback
		res.Fallback = true
		return res, nil
	}
	res.Value = clamp(c, s.output.Domain.Min, s.output.Domain.Max)
	return res, nil
}

// Centroid returns the membership-weighted mean of the domain. ok is false
// when the set has no area.
func Centroid(d Domain, mu []float64) (float64, bool) {
	if len(mu) != d.Len() {
		return 0, false
	}
	area := floats.Sum(mu)
	if !(area > 0) {
		return 0, false
	}
	return floats.Dot(d.Points, mu) / area, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
