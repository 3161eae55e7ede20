// Package sweep evaluates the cascade over parameter ranges for sensitivity
// analysis.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/schoolrun/core/commute"
	"github.com/kilianp07/schoolrun/core/model"
)

// Kind names a sweep.
type Kind string

const (
	KindParentA      Kind = "parent_a"
	KindParentB      Kind = "parent_b"
	KindWeather      Kind = "weather"
	KindGrid         Kind = "grid"
	KindRun          Kind = "run_duration"
	KindAvailability Kind = "availability"
	KindMultiplier   Kind = "weather_multiplier"
	KindRoutine      Kind = "routine"
)

// Kinds lists every sweep in report order.
var Kinds = []Kind{KindParentA, KindParentB, KindWeather, KindGrid, KindRun, KindAvailability, KindMultiplier, KindRoutine}

// ErrUnknownKind is returned by Run for an unrecognised sweep name.
var ErrUnknownKind = errors.New("unknown sweep kind")

const (
	// ReferenceWake is the wake time held fixed while the other parent varies.
	ReferenceWake = 6.5
	coarseStep    = 0.25
	fineStep      = 0.1
)

// Predictor evaluates one input. *commute.Engine satisfies it.
type Predictor interface {
	Predict(in model.Input) (model.Prediction, error)
}

// Point is one sample of a curve. Label is set for categorical axes.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// Series is one named curve.
type Series struct {
	Name   string  `json:"name"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

// Xs returns the abscissae.
func (s Series) Xs() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

// Ys returns the ordinates.
func (s Series) Ys() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}

// Grid holds probabilities over parent A (rows) and parent B (columns).
type Grid struct {
	A      []float64   `json:"parent_a_wake"`
	B      []float64   `json:"parent_b_wake"`
	Values [][]float64 `json:"success_probability"`
}

// Range returns min, min+step, ... up to max inclusive.
func Range(lo, hi, step float64) ([]float64, error) {
	if !(step > 0) || hi < lo {
		return nil, fmt.Errorf("invalid range [%g, %g] step %g", lo, hi, step)
	}
	n := int(math.Round((hi-lo)/step)) + 1
	if n == 1 {
		return []float64{lo}, nil
	}
	r := floats.Span(make([]float64, n), lo, hi)
	r[0], r[n-1] = lo, hi
	return r, nil
}

func mustRange(lo, hi, step float64) []float64 {
	r, err := Range(lo, hi, step)
	if err != nil {
		panic(err)
	}
	return r
}

func weekdayClear(a, b float64) model.Input {
	return model.Input{Weather: model.WeatherClear, DayType: model.DayWeekday, ParentAWake: a, ParentBWake: b}
}

// ParentA varies parent A's wake time with parent B at ReferenceWake on a
// clear weekday.
func ParentA(p Predictor) (Series, error) {
	s := Series{Name: "parent_a_wake", XLabel: "parent A wake (h)", YLabel: "success probability (%)"}
	for _, w := range mustRange(model.WakeMin, model.WakeMax, coarseStep) {
		pr, err := p.Predict(weekdayClear(w, ReferenceWake))
		if err != nil {
			return Series{}, err
		}
		s.Points = append(s.Points, Point{X: w, Y: pr.SuccessProbability})
	}
	return s, nil
}

// ParentB varies parent B's wake time with parent A at ReferenceWake.
func ParentB(p Predictor) (Series, error) {
	s := Series{Name: "parent_b_wake", XLabel: "parent B wake (h)", YLabel: "success probability (%)"}
	for _, w := range mustRange(model.WakeMin, model.WakeMax, coarseStep) {
		pr, err := p.Predict(weekdayClear(ReferenceWake, w))
		if err != nil {
			return Series{}, err
		}
		s.Points = append(s.Points, Point{X: w, Y: pr.SuccessProbability})
	}
	return s, nil
}

func byWeather(p Predictor, name, ylabel string, pick func(model.Prediction) float64) (Series, error) {
	s := Series{Name: name, XLabel: "weather", YLabel: ylabel}
	for _, w := range model.Weathers {
		pr, err := p.Predict(model.Input{Weather: w, DayType: model.DayWeekday, ParentAWake: ReferenceWake, ParentBWake: ReferenceWake})
		if err != nil {
			return Series{}, err
		}
		s.Points = append(s.Points, Point{X: w.Ordinal(), Y: pick(pr), Label: w.String()})
	}
	return s, nil
}

// Weather compares every weather condition at ReferenceWake on a weekday.
func Weather(p Predictor) (Series, error) {
	return byWeather(p, "weather", "success probability (%)", func(pr model.Prediction) float64 {
		return pr.SuccessProbability
	})
}

// WeatherMultipliers reports the travel multiplier per weather condition.
func WeatherMultipliers(p Predictor) (Series, error) {
	return byWeather(p, "weather_travel_multiplier", "travel multiplier", func(pr model.Prediction) float64 {
		return pr.Intermediates.WeatherTravelMultiplier
	})
}

// WakeGrid evaluates every parent A and parent B combination on a clear weekday.
func WakeGrid(p Predictor) (Grid, error) {
	wakes := mustRange(model.WakeMin, model.WakeMax, coarseStep)
	g := Grid{A: wakes, B: append([]float64(nil), wakes...), Values: make([][]float64, len(wakes))}
	for i, a := range g.A {
		row := make([]float64, len(g.B))
		for j, b := range g.B {
			pr, err := p.Predict(weekdayClear(a, b))
			if err != nil {
				return Grid{}, err
			}
			row[j] = pr.SuccessProbability
		}
		g.Values[i] = row
	}
	return g, nil
}

// RunWeathers are the conditions plotted by RunDurations.
var RunWeathers = []model.Weather{model.WeatherClear, model.WeatherLightRain, model.WeatherHeavyRain}

// RunDurations traces run duration against parent B's wake time, one curve
// per weather in RunWeathers, on a weekday with parent A at ReferenceWake.
func RunDurations(p Predictor) ([]Series, error) {
	wakes := mustRange(model.WakeMin, model.WakeMax, fineStep)
	out := make([]Series, 0, len(RunWeathers))
	for _, w := range RunWeathers {
		s := Series{Name: "run_duration_" + w.String(), XLabel: "parent B wake (h)", YLabel: "run duration (min)"}
		for _, b := range wakes {
			pr, err := p.Predict(model.Input{Weather: w, DayType: model.DayWeekday, ParentAWake: ReferenceWake, ParentBWake: b})
			if err != nil {
				return nil, err
			}
			s.Points = append(s.Points, Point{X: b, Y: pr.Intermediates.RunDuration})
		}
		out = append(out, s)
	}
	return out, nil
}

// Availability traces base and final availability against parent B's wake
// time on a clear weekday.
func Availability(p Predictor) ([]Series, error) {
	base := Series{Name: "base_availability", XLabel: "parent B wake (h)", YLabel: "availability (0-10)"}
	final := Series{Name: "final_availability", XLabel: "parent B wake (h)", YLabel: "availability (0-10)"}
	for _, b := range mustRange(model.WakeMin, model.WakeMax, fineStep) {
		pr, err := p.Predict(weekdayClear(ReferenceWake, b))
		if err != nil {
			return nil, err
		}
		base.Points = append(base.Points, Point{X: b, Y: pr.Intermediates.BaseAvailability})
		final.Points = append(final.Points, Point{X: b, Y: pr.Intermediates.FinalAvailability})
	}
	return []Series{base, final}, nil
}

// Routine traces breakfast and dressing times over availability 0..10.
func Routine() []Series {
	breakfast := Series{Name: "breakfast_time", XLabel: "availability", YLabel: "time (min)"}
	dressing := Series{Name: "dressing_time", XLabel: "availability", YLabel: "time (min)"}
	for _, a := range mustRange(0, 10, 1) {
		breakfast.Points = append(breakfast.Points, Point{X: a, Y: commute.BreakfastTime(a)})
		dressing.Points = append(dressing.Points, Point{X: a, Y: commute.DressingTime(a)})
	}
	return []Series{breakfast, dressing}
}

// Result is the output of one sweep. Grid is set only for KindGrid.
type Result struct {
	Kind   Kind     `json:"kind"`
	Series []Series `json:"series,omitempty"`
	Grid   *Grid    `json:"grid,omitempty"`
}

// Points counts evaluated samples.
func (r Result) Points() int {
	n := 0
	for _, s := range r.Series {
		n += len(s.Points)
	}
	if r.Grid != nil {
		n += len(r.Grid.A) * len(r.Grid.B)
	}
	return n
}

// ParseKind validates a sweep name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	sort.Strings(names)
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownKind, s, names)
}

// Run computes the named sweep.
func Run(p Predictor, kind Kind) (Result, error) {
	res := Result{Kind: kind}
	var (
		s   Series
		ss  []Series
		err error
	)
	switch kind {
	case KindParentA:
		s, err = ParentA(p)
		ss = []Series{s}
	case KindParentB:
		s, err = ParentB(p)
		ss = []Series{s}
	case KindWeather:
		s, err = Weather(p)
		ss = []Series{s}
	case KindMultiplier:
		s, err = WeatherMultipliers(p)
		ss = []Series{s}
	case KindGrid:
		var g Grid
		g, err = WakeGrid(p)
		res.Grid = &g
	case KindRun:
		ss, err = RunDurations(p)
	case KindAvailability:
		ss, err = Availability(p)
	case KindRoutine:
		ss = Routine()
	default:
		return Result{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return Result{}, fmt.Errorf("sweep %s: %w", kind, err)
	}
	res.Series = ss
	return res, nil
}
