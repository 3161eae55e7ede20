package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/schoolrun/core/metrics"
	"github.com/kilianp07/schoolrun/infra/logger"
)

// InfluxConfig locates the InfluxDB bucket predictions are written to.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes prediction events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// RecordPrediction writes the prediction with every intermediate as a field.
func (s *InfluxSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, predictionPoint(ev))
}

// RecordSweep writes a sweep summary.
func (s *InfluxSink) RecordSweep(ev coremetrics.SweepEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sweep").
		AddTag("kind", ev.Kind).
		AddField("sweep_id", ev.ID).
		AddField("points", ev.Points).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func predictionPoint(ev coremetrics.PredictionEvent) *write.Point {
	pr := ev.Prediction
	p := write.NewPointWithMeasurement("prediction").
		AddTag("weather", pr.Input.Weather.String()).
		AddTag("day_type", pr.Input.DayType.String())
	if ev.Source != "" {
		p = p.AddTag("source", ev.Source)
	}
	// unique per event, so never a tag
	p = p.AddField("prediction_id", ev.ID).
		AddField("parent_a_wake", round3(pr.Input.ParentAWake)).
		AddField("parent_b_wake", round3(pr.Input.ParentBWake)).
		AddField("success_probability", round3(pr.SuccessProbability))
	for _, sv := range pr.Intermediates.Stages() {
		p = p.AddField(string(sv.Name), round3(sv.Value))
	}
	return p.AddField("wake_clamped", pr.WakeClamped).
		AddField("run_fallback", pr.RunFallback).
		SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
