package fuzzy

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTerm is returned when a term label is not defined on a variable.
	ErrUnknownTerm = errors.New("unknown term")
	// ErrDuplicateTerm is returned when a term label is added twice.
	ErrDuplicateTerm = errors.New("duplicate term")
)

// Term is a labeled membership function sampled over its variable's domain.
type Term struct {
	Name  string
	Shape Shape
	mu    []float64
}

// Variable is a linguistic variable: a numeric domain with labeled terms.
type Variable struct {
	Name   string
	Domain Domain
	terms  []Term
	index  map[string]int
}

// NewVariable creates a variable without terms.
func NewVariable(name string, dom Domain) *Variable {
	return &Variable{Name: name, Domain: dom, index: make(map[string]int)}
}

// AddTerm samples the shape over the variable's domain and registers it.
func (v *Variable) AddTerm(name string, s Shape) error {
	if _, ok := v.index[name]; ok {
		return fmt.Errorf("%w: %s.%s", ErrDuplicateTerm, v.Name, name)
	}
	v.index[name] = len(v.terms)
	v.terms = append(v.terms, Term{Name: name, Shape: s, mu: s.Sample(v.Domain)})
	return nil
}

// Terms returns the term labels in insertion order.
func (v *Variable) Terms() []string {
	names := make([]string, len(v.terms))
	for i, t := range v.terms {
		names[i] = t.Name
	}
	return names
}

// Has reports whether the term is defined.
func (v *Variable) Has(term string) bool {
	_, ok := v.index[term]
	return ok
}

// Sampled returns a copy of the sampled membership of a term.
func (v *Variable) Sampled(term string) ([]float64, error) {
	i, ok := v.index[term]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, v.Name, term)
	}
	cp := make([]float64, len(v.terms[i].mu))
	copy(cp, v.terms[i].mu)
	return cp, nil
}

// Membership returns the interpolated degree of x in the given term.
func (v *Variable) Membership(term string, x float64) (float64, error) {
	i, ok := v.index[term]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, v.Name, term)
	}
	return Interp(v.Domain, v.terms[i].mu, x), nil
}

// Fuzzify returns the degree of x in every term.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.terms))
	for _, t := range v.terms {
		out[t.Name] = Interp(v.Domain, t.mu, x)
	}
	return out
}

func (v *Variable) sampled(term string) []float64 {
	return v.terms[v.index[term]].mu
}
