package commute

import (
	"fmt"

	"github.com/kilianp07/schoolrun/core/fuzzy"
)

// Variable names of the run decision system.
const (
	VarWake    = "parent_b_wake"
	VarWeather = "weather"
	VarDay     = "day_type"
	VarRun     = "run_duration"
)

// Run duration terms.
const (
	RunNone     = "none"
	RunShort    = "short"
	RunMedium   = "medium"
	RunLong     = "long"
	RunVeryLong = "very_long"
)

const (
	// RunFallbackMinutes is returned when no run rule fires.
	RunFallbackMinutes = 5.0
	// RunMaxMinutes bounds the run duration domain.
	RunMaxMinutes = 120.0
)

// Resolution sets the sampling step of each run decision variable.
type Resolution struct {
	WakeStep    float64 `json:"wake_step"`
	WeatherStep float64 `json:"weather_step"`
	DayStep     float64 `json:"day_step"`
	RunStep     float64 `json:"run_step"`
}

// DefaultResolution samples inputs every 0.01 and the run output every 0.1 min.
func DefaultResolution() Resolution {
	return Resolution{WakeStep: 0.01, WeatherStep: 0.01, DayStep: 0.01, RunStep: 0.1}
}

type termSpec struct {
	name  string
	shape fuzzy.Shape
}

func trap(a, b, c, d float64) fuzzy.Shape {
	return fuzzy.Shape{Kind: fuzzy.KindTrapezoid, A: a, B: b, C: c, D: d}
}

func tri(a, b, c float64) fuzzy.Shape {
	return fuzzy.Shape{Kind: fuzzy.KindTriangle, A: a, B: b, C: b, D: c}
}

// very_early and late are open-ended at the domain edges.
var wakeTerms = []termSpec{
	{"very_early", trap(5.5, 5.5, 6.0, 6.25)},
	{"early", tri(6.0, 6.5, 7.0)},
	{"normal", tri(6.5, 7.0, 7.5)},
	{"late", trap(7.0, 7.5, 8.5, 8.5)},
}

var weatherTerms = []termSpec{
	{"good", trap(1, 1, 2, 2.5)},
	{"poor", tri(2.5, 3, 3.5)},
	{"bad", trap(3.5, 4, 5, 5)},
}

var dayTerms = []termSpec{
	{"weekend", tri(-0.5, 0, 0.5)},
	{"weekday", tri(0.5, 1, 1.5)},
}

var runTerms = []termSpec{
	{RunNone, trap(0, 0, 5, 10)},
	{RunShort, tri(10, 20, 30)},
	{RunMedium, tri(25, 37.5, 50)},
	{RunLong, tri(45, 67.5, 90)},
	{RunVeryLong, trap(80, 100, 120, 120)},
}

func isWake(term string) fuzzy.Antecedent    { return fuzzy.Is(VarWake, term) }
func isWeather(term string) fuzzy.Antecedent { return fuzzy.Is(VarWeather, term) }
func isDay(term string) fuzzy.Antecedent     { return fuzzy.Is(VarDay, term) }

// RunRules is the run decision rule base. Rules carry no priority; all are
// evaluated and combined by maximum.
var RunRules = []fuzzy.Rule{
	{Name: "bad_weather", If: isWeather("bad"), Then: RunNone},

	{Name: "very_early_good_weekend", If: fuzzy.And(isWake("very_early"), isWeather("good"), isDay("weekend")), Then: RunVeryLong},
	{Name: "very_early_good_weekday", If: fuzzy.And(isWake("very_early"), isWeather("good"), isDay("weekday")), Then: RunLong},
	{Name: "very_early_poor_weekend", If: fuzzy.And(isWake("very_early"), isWeather("poor"), isDay("weekend")), Then: RunMedium},
	{Name: "very_early_poor_weekday", If: fuzzy.And(isWake("very_early"), isWeather("poor"), isDay("weekday")), Then: RunShort},

	{Name: "early_good_weekend", If: fuzzy.And(isWake("early"), isWeather("good"), isDay("weekend")), Then: RunLong},
	{Name: "early_good_weekday", If: fuzzy.And(isWake("early"), isWeather("good"), isDay("weekday")), Then: RunMedium},
	{Name: "early_poor", If: fuzzy.And(isWake("early"), isWeather("poor")), Then: RunShort},

	{Name: "normal_good_weekend", If: fuzzy.And(isWake("normal"), isWeather("good"), isDay("weekend")), Then: RunMedium},
	{Name: "normal_good_weekday", If: fuzzy.And(isWake("normal"), isWeather("good"), isDay("weekday")), Then: RunShort},
	{Name: "normal_poor_weekend", If: fuzzy.And(isWake("normal"), isWeather("poor"), isDay("weekend")), Then: RunShort},
	{Name: "normal_poor_weekday", If: fuzzy.And(isWake("normal"), isWeather("poor"), isDay("weekday")), Then: RunNone},

	{Name: "late_good_weekend", If: fuzzy.And(isWake("late"), isWeather("good"), isDay("weekend")), Then: RunShort},
	{Name: "late_otherwise", If: fuzzy.And(isWake("late"), fuzzy.Or(isWeather("poor"), isWeather("bad"), isDay("weekday"))), Then: RunNone},
}

// RunModel decides parent B's exercise run duration.
type RunModel struct {
	sys *fuzzy.System
	res Resolution
}

// NewRunModel builds the run decision system at the given resolution.
func NewRunModel(res Resolution) (*RunModel, error) {
	wakeVar, err := newVariable(VarWake, 5.5, 8.5, res.WakeStep, wakeTerms)
	if err != nil {
		return nil, err
	}
	weatherVar, err := newVariable(VarWeather, 1, 5, res.WeatherStep, weatherTerms)
	if err != nil {
		return nil, err
	}
	dayVar, err := newVariable(VarDay, 0, 1, res.DayStep, dayTerms)
	if err != nil {
		return nil, err
	}
	runVar, err := newVariable(VarRun, 0, RunMaxMinutes, res.RunStep, runTerms)
	if err != nil {
		return nil, err
	}
	sys := fuzzy.NewSystem(runVar, RunFallbackMinutes, wakeVar, weatherVar, dayVar)
	for _, r := range RunRules {
		if err := sys.AddRule(r); err != nil {
			return nil, err
		}
	}
	return &RunModel{sys: sys, res: res}, nil
}

func newVariable(name string, min, max, step float64, terms []termSpec) (*fuzzy.Variable, error) {
	dom, err := fuzzy.NewDomain(min, max, step)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v := fuzzy.NewVariable(name, dom)
	for _, t := range terms {
		if err := v.AddTerm(t.name, t.shape); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Resolution returns the sampling steps the model was built with.
func (m *RunModel) Resolution() Resolution { return m.res }

// System exposes the underlying inference system for diagnostics.
func (m *RunModel) System() *fuzzy.System { return m.sys }

// Infer runs the rule base. weather is the 1-5 ordinal and day is 1 for
// weekdays and 0 for weekends; fractional values are accepted.
func (m *RunModel) Infer(wakeB, weather, day float64) (fuzzy.Result, error) {
	return m.sys.Infer(map[string]float64{
		VarWake:    wakeB,
		VarWeather: weather,
		VarDay:     day,
	})
}

// Duration returns the run duration in minutes within [0, RunMaxMinutes].
// Invalid inputs yield the fallback duration.
func (m *RunModel) Duration(wakeB, weather, day float64) float64 {
	res, err := m.Infer(wakeB, weather, day)
	if err != nil {
		return RunFallbackMinutes
	}
	return clamp(res.Value, 0, RunMaxMinutes)
}
