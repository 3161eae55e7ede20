package fuzzy

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrBreakpoints indicates shape breakpoints that are not non-decreasing.
var ErrBreakpoints = errors.New("breakpoints must be non-decreasing")

// ErrDomain indicates an empty or inverted domain definition.
var ErrDomain = errors.New("invalid domain")

// Domain is an ascending set of sample points over [Min, Max].
type Domain struct {
	Min    float64
	Max    float64
	Step   float64
	Points []float64
}

// NewDomain samples [min, max] every step. Both endpoints are always present.
func NewDomain(min, max, step float64) (Domain, error) {
	if !(max > min) || !(step > 0) || math.IsInf(max-min, 0) {
		return Domain{}, fmt.Errorf("%w: [%g, %g] step %g", ErrDomain, min, max, step)
	}
	n := int(math.Round((max-min)/step)) + 1
	if n < 2 {
		n = 2
	}
	pts := floats.Span(make([]float64, n), min, max)
	pts[0], pts[n-1] = min, max
	return Domain{Min: min, Max: max, Step: step, Points: pts}, nil
}

// MustDomain is like NewDomain but panics on invalid bounds. It is meant for
// package-level constants.
func MustDomain(min, max, step float64) Domain {
	d, err := NewDomain(min, max, step)
	if err != nil {
		panic(err)
	}
	return d
}

// Len returns the number of samples.
func (d Domain) Len() int { return len(d.Points) }

// ShapeKind selects the membership function family.
type ShapeKind int

const (
	KindTrapezoid ShapeKind = iota
	KindTriangle
)

func (k ShapeKind) String() string {
	switch k {
	case KindTrapezoid:
		return "trapezoid"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Shape describes a membership function by its breakpoints. Triangles are
// stored as trapezoids with B == C.
type Shape struct {
	Kind       ShapeKind
	A, B, C, D float64
}

// Trap returns a trapezoid shape a <= b <= c <= d.
func Trap(a, b, c, d float64) (Shape, error) {
	if !(a <= b && b <= c && c <= d) {
		return Shape{}, fmt.Errorf("%w: trapezoid [%g %g %g %g]", ErrBreakpoints, a, b, c, d)
	}
	return Shape{Kind: KindTrapezoid, A: a, B: b, C: c, D: d}, nil
}

// Tri returns a triangle shape a <= b <= c.
func Tri(a, b, c float64) (Shape, error) {
	if !(a <= b && b <= c) {
		return Shape{}, fmt.Errorf("%w: triangle [%g %g %g]", ErrBreakpoints, a, b, c)
	}
	return Shape{Kind: KindTriangle, A: a, B: b, C: b, D: c}, nil
}

// At evaluates the shape at x without sampling.
func (s Shape) At(x float64) float64 {
	switch {
	case x < s.A || x > s.D:
		return 0
	case x >= s.B && x <= s.C:
		return 1
	case x < s.B:
		// x in [A, B) so B > A
		return (x - s.A) / (s.B - s.A)
	default:
		// x in (C, D] so D > C
		return (s.D - x) / (s.D - s.C)
	}
}

// Sample evaluates the shape at every domain point.
func (s Shape) Sample(d Domain) []float64 {
	out := make([]float64, len(d.Points))
	for i, x := range d.Points {
		out[i] = s.At(x)
	}
	return out
}

// Trapezoid samples a trapezoid over the domain. Breakpoints are expected to
// be non-decreasing; use Trap to validate them first.
func Trapezoid(dom Domain, a, b, c, d float64) []float64 {
	return Shape{Kind: KindTrapezoid, A: a, B: b, C: c, D: d}.Sample(dom)
}

// Triangle samples a triangle over the domain.
func Triangle(dom Domain, a, b, c float64) []float64 {
	return Shape{Kind: KindTriangle, A: a, B: b, C: b, D: c}.Sample(dom)
}

// Interp linearly interpolates a sampled shape at x. Queries outside the
// domain take the nearest edge sample.
func Interp(d Domain, shape []float64, x float64) float64 {
	pts := d.Points
	n := len(pts)
	if n == 0 || len(shape) != n || math.IsNaN(x) {
		return 0
	}
	if x <= pts[0] {
		return shape[0]
	}
	if x >= pts[n-1] {
		return shape[n-1]
	}
	i := sort.SearchFloat64s(pts, x)
	if pts[i] == x {
		return shape[i]
	}
	x0, x1 := pts[i-1], pts[i]
	y0, y1 := shape[i-1], shape[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
