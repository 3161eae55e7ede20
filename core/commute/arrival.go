package commute

import "math"

// Overrides carries the raw values needed by the override rules. A nil field
// means the value is unavailable and disables every override.
type Overrides struct {
	ParentAWake    *float64
	ParentBWake    *float64
	WeatherOrdinal *float64
	RunDuration    *float64
}

// Known returns a pointer to v for populating Overrides.
func Known(v float64) *float64 { return &v }

// Complete reports whether all four values are present.
func (o Overrides) Complete() bool {
	return o.ParentAWake != nil && o.ParentBWake != nil && o.WeatherOrdinal != nil && o.RunDuration != nil
}

// Apply raises p for very early, dry mornings. It never lowers p, so
// applying it repeatedly has no further effect.
func (o Overrides) Apply(p float64) float64 {
	if !o.Complete() {
		return p
	}
	a, b, w, run := *o.ParentAWake, *o.ParentBWake, *o.WeatherOrdinal, *o.RunDuration
	bothVeryEarly := a <= 6.0 && b <= 6.0
	if bothVeryEarly && w <= 2 && run < 30 {
		p = math.Max(p, 90.0)
	}
	if bothVeryEarly && w == 1 {
		p = math.Max(p, 85.0)
	}
	return p
}

// BaseArrivalProbability applies the decision table on routine efficiency,
// transport efficiency and the weather travel multiplier. The first matching
// row wins.
func BaseArrivalProbability(routine, transport, multiplier float64) float64 {
	dry := multiplier <= 1.3
	switch {
	case dry && routine >= 7 && transport >= 7:
		return 92.0
	case dry && routine >= 7 && transport >= 4:
		return 85.0
	case dry && routine >= 4 && transport >= 7:
		return 85.0
	case dry && routine >= 4 && transport >= 4:
		return 60.0
	case multiplier > 2.0:
		return math.Max(10.0, 60.0-(multiplier-1.0)*30)
	default:
		return 30.0
	}
}

// ArrivalProbability returns the on-time percentage in [0, 100].
func ArrivalProbability(routine, transport, multiplier float64, ov Overrides) float64 {
	p := BaseArrivalProbability(routine, transport, multiplier)
	return clamp(ov.Apply(p), 0, 100)
}
