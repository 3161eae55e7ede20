package scenarios

import (
	"fmt"
	"sort"

	"github.com/kilianp07/schoolrun/core/model"
)

// Predictor evaluates typed inputs. *commute.Engine satisfies it.
type Predictor interface {
	Predict(in model.Input) (model.Prediction, error)
}

// Outcome is the result of one case.
type Outcome struct {
	Scenario   string
	Case       string
	Prediction model.Prediction
	Failures   []string
}

// Passed reports whether every expectation held.
func (o Outcome) Passed() bool { return len(o.Failures) == 0 }

// Run evaluates every case of sc. Engine errors are returned, unmet
// expectations are reported in the outcomes.
func Run(p Predictor, sc *Scenario) ([]Outcome, error) {
	out := make([]Outcome, 0, len(sc.Cases))
	for _, c := range sc.Cases {
		in, err := c.Input.Request().Input()
		if err != nil {
			return nil, fmt.Errorf("scenario %s case %s: %w", sc.Name, c.Name, err)
		}
		pr, err := p.Predict(in)
		if err != nil {
			return nil, fmt.Errorf("scenario %s case %s: %w", sc.Name, c.Name, err)
		}
		o := Outcome{Scenario: sc.Name, Case: c.Name, Prediction: pr}
		keys := make([]string, 0, len(c.Expect))
		for k := range c.Expect {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b := c.Expect[k]
			v := pr.SuccessProbability
			if k != ProbabilityKey {
				v, _ = pr.Intermediates.Get(model.Stage(k))
			}
			if !b.Contains(v, sc.Tolerance) {
				o.Failures = append(o.Failures, fmt.Sprintf("%s = %g, want %s", k, v, b))
			}
		}
		if c.WakeClamped != nil && *c.WakeClamped != pr.WakeClamped {
			o.Failures = append(o.Failures, fmt.Sprintf("wake_clamped = %t, want %t", pr.WakeClamped, *c.WakeClamped))
		}
		if c.RunFallback != nil && *c.RunFallback != pr.RunFallback {
			o.Failures = append(o.Failures, fmt.Sprintf("run_fallback = %t, want %t", pr.RunFallback, *c.RunFallback))
		}
		out = append(out, o)
	}
	return out, nil
}
