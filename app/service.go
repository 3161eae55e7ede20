package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/schoolrun/api/predict"
	"github.com/kilianp07/schoolrun/api/sweeps"
	"github.com/kilianp07/schoolrun/config"
	"github.com/kilianp07/schoolrun/core/commute"
	coremetrics "github.com/kilianp07/schoolrun/core/metrics"
	"github.com/kilianp07/schoolrun/core/model"
	"github.com/kilianp07/schoolrun/core/sweep"
	"github.com/kilianp07/schoolrun/infra/logger"
	"github.com/kilianp07/schoolrun/infra/metrics"
	"github.com/kilianp07/schoolrun/qa/scenarios"
)

// Service wires the engine to logging and metrics sinks.
type Service struct {
	Engine *commute.Engine
	cfg    *config.Config
	sink   coremetrics.MetricsSink
	log    logger.Logger
	now    func() time.Time
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	opts := logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return NewWithSink(cfg, sink, logger.NewWithOptions("service", opts), logger.NewWithOptions("engine", opts))
}

// NewWithSink builds a Service around an existing sink and loggers.
func NewWithSink(cfg *config.Config, sink coremetrics.MetricsSink, log, engineLog logger.Logger) (*Service, error) {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	eng, err := commute.NewEngine(cfg.Engine, engineLog)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Service{Engine: eng, cfg: cfg, sink: sink, log: log, now: time.Now}, nil
}

// Predict evaluates in and records the outcome. Sink failures are logged and
// do not fail the prediction.
func (s *Service) Predict(in model.Input, source string) (model.Prediction, error) {
	p, err := s.Engine.Predict(in)
	if err != nil {
		return model.Prediction{}, err
	}
	if err := s.sink.RecordPrediction(coremetrics.NewPredictionEvent(p, source, s.now())); err != nil {
		s.log.Errorf("record prediction: %v", err)
	}
	return p, nil
}

// PredictLabels parses a labelled request and calls Predict.
func (s *Service) PredictLabels(weather, dayType string, wakeA, wakeB float64, source string) (model.Prediction, error) {
	in, err := model.NewRequest(weather, dayType, wakeA, wakeB).Input()
	if err != nil {
		return model.Prediction{}, err
	}
	return s.Predict(in, source)
}

// Source returns a predictor that records every prediction under source.
func (s *Service) Source(source string) *SourcedPredictor {
	return &SourcedPredictor{svc: s, source: source}
}

// SourcedPredictor binds a Service to a source label.
type SourcedPredictor struct {
	svc    *Service
	source string
}

func (p *SourcedPredictor) Predict(in model.Input) (model.Prediction, error) {
	return p.svc.Predict(in, p.source)
}

func (p *SourcedPredictor) PredictLabels(weather, dayType string, wakeA, wakeB float64) (model.Prediction, error) {
	return p.svc.PredictLabels(weather, dayType, wakeA, wakeB, p.source)
}

// Sweep computes one sweep against the bare engine, so sweep samples are not
// recorded as predictions, and records a summary.
func (s *Service) Sweep(kind sweep.Kind) (sweep.Result, error) {
	start := s.now()
	res, err := sweep.Run(s.Engine, kind)
	if err != nil {
		return sweep.Result{}, err
	}
	if rec, ok := s.sink.(coremetrics.SweepRecorder); ok {
		ev := coremetrics.SweepEvent{
			ID:       uuid.NewString(),
			Kind:     string(kind),
			Points:   res.Points(),
			Duration: s.now().Sub(start),
			Time:     start,
		}
		if err := rec.RecordSweep(ev); err != nil {
			s.log.Errorf("record sweep: %v", err)
		}
	}
	s.log.Debugf("sweep %s: %d points", kind, res.Points())
	return res, nil
}

// Scenarios evaluates every scenario, recording predictions under the
// "scenario" source.
func (s *Service) Scenarios(scs []*scenarios.Scenario) ([]scenarios.Outcome, error) {
	var out []scenarios.Outcome
	p := s.Source("scenario")
	for _, sc := range scs {
		res, err := scenarios.Run(p, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/predict", predict.NewHandler(s.Source("api")))
	mux.Handle("/api/sweep", sweeps.NewHandler(s))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Run serves the HTTP API until the context is cancelled. When the metrics
// address differs from the API address, /metrics is also served there.
func (s *Service) Run(ctx context.Context) error {
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" && addr != s.cfg.Server.Addr {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return metrics.Serve(ctx, s.cfg.Server.Addr, s.Handler())
}

// Close releases resources held by the sinks.
func (s *Service) Close() error {
	coremetrics.Close(s.sink)
	return nil
}
