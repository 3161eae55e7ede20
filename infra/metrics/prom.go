package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/schoolrun/core/metrics"
)

// PromSink records predictions and sweeps in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	probability *prometheus.HistogramVec
	fallbacks   prometheus.Counter
	clamped     prometheus.Counter
	run         *prometheus.GaugeVec
	sweeps      *prometheus.CounterVec
	sweepTime   *prometheus.HistogramVec
}

// NewPromSink registers metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.predictions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schoolrun_predictions_total",
		Help: "Total number of evaluated predictions",
	}, []string{"weather", "day_type", "wake_clamped"})); err != nil {
		return nil, err
	}
	if s.probability, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schoolrun_success_probability_percent",
		Help:    "Distribution of on-time arrival probabilities",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	}, []string{"weather"})); err != nil {
		return nil, err
	}
	if s.fallbacks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schoolrun_run_fallbacks_total",
		Help: "Predictions where no run rule fired",
	})); err != nil {
		return nil, err
	}
	if s.clamped, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schoolrun_wake_clamped_total",
		Help: "Predictions whose wake times were clamped into range",
	})); err != nil {
		return nil, err
	}
	if s.run, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schoolrun_run_duration_minutes",
		Help: "Run duration of the latest prediction",
	}, []string{"weather", "day_type"})); err != nil {
		return nil, err
	}
	if s.sweeps, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schoolrun_sweeps_total",
		Help: "Completed sensitivity sweeps",
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if s.sweepTime, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schoolrun_sweep_duration_seconds",
		Help:    "Time spent computing a sweep",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction updates the counters, histogram and gauge for one prediction.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	p := ev.Prediction
	weather := p.Input.Weather.String()
	day := p.Input.DayType.String()
	s.predictions.WithLabelValues(weather, day, strconv.FormatBool(p.WakeClamped)).Inc()
	s.probability.WithLabelValues(weather).Observe(p.SuccessProbability)
	s.run.WithLabelValues(weather, day).Set(p.Intermediates.RunDuration)
	if p.RunFallback {
		s.fallbacks.Inc()
	}
	if p.WakeClamped {
		s.clamped.Inc()
	}
	return nil
}

// RecordSweep counts the sweep and observes its duration.
func (s *PromSink) RecordSweep(ev coremetrics.SweepEvent) error {
	s.sweeps.WithLabelValues(ev.Kind).Inc()
	s.sweepTime.WithLabelValues(ev.Kind).Observe(ev.Duration.Seconds())
	return nil
}
