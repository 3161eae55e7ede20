package commute

import (
	"fmt"

	"github.com/kilianp07/schoolrun/core/logger"
	"github.com/kilianp07/schoolrun/core/model"
)

// Engine runs the five-level cascade. It is immutable after construction and
// safe for concurrent use.
type Engine struct {
	cfg    Config
	run    *RunModel
	logger logger.Logger
}

// NewEngine validates cfg and builds the run decision model. A nil logger
// disables logging.
func NewEngine(cfg Config, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	run, err := NewRunModel(cfg.Resolution)
	if err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{cfg: cfg, run: run, logger: log}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// RunModel returns the run decision model.
func (e *Engine) RunModel() *RunModel { return e.run }

// PredictLabels parses weather and day labels and calls Predict.
func (e *Engine) PredictLabels(weather, dayType string, wakeA, wakeB float64) (model.Prediction, error) {
	in, err := model.NewRequest(weather, dayType, wakeA, wakeB).Input()
	if err != nil {
		return model.Prediction{}, err
	}
	return e.Predict(in)
}

// Predict returns the on-time probability and every intermediate value.
// Errors are returned only for invalid inputs.
func (e *Engine) Predict(in model.Input) (model.Prediction, error) {
	if err := in.Validate(); err != nil {
		return model.Prediction{}, err
	}
	in, clamped, err := e.applyWakePolicy(in)
	if err != nil {
		return model.Prediction{}, err
	}

	weatherNum := in.Weather.Ordinal()
	dayNum := in.DayType.Ordinal()

	// Level 1
	res, err := e.run.Infer(in.ParentBWake, weatherNum, dayNum)
	if err != nil {
		return model.Prediction{}, fmt.Errorf("run decision: %w", err)
	}
	runDuration := clamp(res.Value, 0, RunMaxMinutes)
	if res.Fallback {
		e.logger.Debugf("no run rule fired for wake=%.2f weather=%s day=%s, using %.1f min", in.ParentBWake, in.Weather, in.DayType, RunFallbackMinutes)
	}
	base := BaseAvailability(in.ParentAWake, in.ParentBWake)

	// Level 2
	final := FinalAvailability(base, runDuration)
	multiplier := WeatherTravelMultiplier(weatherNum)

	// Level 3
	breakfast := BreakfastTime(final)
	dressing := DressingTime(final)
	transport := TransportEfficiency(final, dayNum)

	// Level 4
	routine := RoutineEfficiency(breakfast, dressing)

	// Level 5
	prob := ArrivalProbability(routine, transport, multiplier, Overrides{
		ParentAWake:    Known(in.ParentAWake),
		ParentBWake:    Known(in.ParentBWake),
		WeatherOrdinal: Known(weatherNum),
		RunDuration:    Known(runDuration),
	})

	p := model.Prediction{
		Input:              in,
		SuccessProbability: prob,
		Intermediates: model.Intermediates{
			RunDuration:             runDuration,
			BaseAvailability:        base,
			FinalAvailability:       final,
			WeatherTravelMultiplier: multiplier,
			BreakfastTime:           breakfast,
			DressingTime:            dressing,
			TransportEfficiency:     transport,
			RoutineEfficiency:       routine,
		},
		WakeClamped: clamped,
		RunFallback: res.Fallback,
	}
	e.logger.Debugw("prediction", map[string]any{
		"weather":             in.Weather.String(),
		"day_type":            in.DayType.String(),
		"parent_a_wake":       in.ParentAWake,
		"parent_b_wake":       in.ParentBWake,
		"run_duration":        runDuration,
		"final_availability":  final,
		"success_probability": prob,
	})
	return p, nil
}

func (e *Engine) applyWakePolicy(in model.Input) (model.Input, bool, error) {
	a, b := in.ParentAWake, in.ParentBWake
	inRange := func(v float64) bool { return v >= model.WakeMin && v <= model.WakeMax }
	if inRange(a) && inRange(b) {
		return in, false, nil
	}
	if e.cfg.WakePolicy == WakeReject {
		return in, false, fmt.Errorf("%w: parent_a_wake=%v parent_b_wake=%v not in [%g, %g]",
			ErrWakeOutOfRange, a, b, model.WakeMin, model.WakeMax)
	}
	in.ParentAWake = clamp(a, model.WakeMin, model.WakeMax)
	in.ParentBWake = clamp(b, model.WakeMin, model.WakeMax)
	e.logger.Warnf("wake times clamped from (%.2f, %.2f) to (%.2f, %.2f)", a, b, in.ParentAWake, in.ParentBWake)
	return in, true, nil
}
