package commute

import (
	"errors"
	"fmt"
)

// WakePolicy decides how wake times outside [model.WakeMin, model.WakeMax]
// are handled.
type WakePolicy string

const (
	// WakeClamp moves out-of-range wake times to the nearest bound.
	WakeClamp WakePolicy = "clamp"
	// WakeReject fails the prediction with ErrWakeOutOfRange.
	WakeReject WakePolicy = "reject"
)

// ErrWakeOutOfRange is returned under WakeReject for out-of-range wake times.
var ErrWakeOutOfRange = errors.New("wake time out of range")

// Config defines engine settings.
type Config struct {
	WakePolicy WakePolicy `json:"wake_policy"`
	Resolution Resolution `json:"resolution"`
}

// DefaultConfig returns a clamp policy at the default resolution.
func DefaultConfig() Config {
	return Config{WakePolicy: WakeClamp, Resolution: DefaultResolution()}
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	def := DefaultResolution()
	if c.WakePolicy == "" {
		c.WakePolicy = WakeClamp
	}
	if c.Resolution.WakeStep == 0 {
		c.Resolution.WakeStep = def.WakeStep
	}
	if c.Resolution.WeatherStep == 0 {
		c.Resolution.WeatherStep = def.WeatherStep
	}
	if c.Resolution.DayStep == 0 {
		c.Resolution.DayStep = def.DayStep
	}
	if c.Resolution.RunStep == 0 {
		c.Resolution.RunStep = def.RunStep
	}
}

// Validate checks the policy and that every step is positive and finer than
// the domain it samples.
func (c Config) Validate() error {
	if c.WakePolicy != WakeClamp && c.WakePolicy != WakeReject {
		return fmt.Errorf("unknown wake policy %q", c.WakePolicy)
	}
	r := c.Resolution
	for name, step := range map[string]struct{ v, span float64 }{
		"wake_step":    {r.WakeStep, 3},
		"weather_step": {r.WeatherStep, 4},
		"day_step":     {r.DayStep, 1},
		"run_step":     {r.RunStep, RunMaxMinutes},
	} {
		if !(step.v > 0) || step.v > step.span {
			return fmt.Errorf("%s must be in (0, %g], got %g", name, step.span, step.v)
		}
	}
	return nil
}
