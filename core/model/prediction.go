package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Stage names one intermediate value of the cascade.
type Stage string

const (
	StageRunDuration             Stage = "run_duration"
	StageBaseAvailability        Stage = "base_availability"
	StageFinalAvailability       Stage = "final_availability"
	StageWeatherTravelMultiplier Stage = "weather_travel_multiplier"
	StageBreakfastTime           Stage = "breakfast_time"
	StageDressingTime            Stage = "dressing_time"
	StageTransportEfficiency     Stage = "transport_efficiency"
	StageRoutineEfficiency       Stage = "routine_efficiency"
)

// StageOrder is the order in which stages are produced.
var StageOrder = []Stage{
	StageRunDuration,
	StageBaseAvailability,
	StageFinalAvailability,
	StageWeatherTravelMultiplier,
	StageBreakfastTime,
	StageDressingTime,
	StageTransportEfficiency,
	StageRoutineEfficiency,
}

// StageValue pairs a stage with its value.
type StageValue struct {
	Name  Stage
	Value float64
}

// Intermediates holds every intermediate value of one prediction.
type Intermediates struct {
	RunDuration             float64
	BaseAvailability        float64
	FinalAvailability       float64
	WeatherTravelMultiplier float64
	BreakfastTime           float64
	DressingTime            float64
	TransportEfficiency     float64
	RoutineEfficiency       float64
}

// Get returns the value of a named stage.
func (m Intermediates) Get(s Stage) (float64, bool) {
	switch s {
	case StageRunDuration:
		return m.RunDuration, true
	case StageBaseAvailability:
		return m.BaseAvailability, true
	case StageFinalAvailability:
		return m.FinalAvailability, true
	case StageWeatherTravelMultiplier:
		return m.WeatherTravelMultiplier, true
	case StageBreakfastTime:
		return m.BreakfastTime, true
	case StageDressingTime:
		return m.DressingTime, true
	case StageTransportEfficiency:
		return m.TransportEfficiency, true
	case StageRoutineEfficiency:
		return m.RoutineEfficiency, true
	default:
		return 0, false
	}
}

// Stages returns the values in production order.
func (m Intermediates) Stages() []StageValue {
	out := make([]StageValue, len(StageOrder))
	for i, s := range StageOrder {
		v, _ := m.Get(s)
		out[i] = StageValue{Name: s, Value: v}
	}
	return out
}

// MarshalJSON encodes the stages as an object keyed in production order.
func (m Intermediates) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sv := range m.Stages() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(sv.Name)))
		buf.WriteByte(':')
		v, err := json.Marshal(sv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of stage values.
func (m *Intermediates) UnmarshalJSON(b []byte) error {
	raw := map[Stage]float64{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = Intermediates{
		RunDuration:             raw[StageRunDuration],
		BaseAvailability:        raw[StageBaseAvailability],
		FinalAvailability:       raw[StageFinalAvailability],
		WeatherTravelMultiplier: raw[StageWeatherTravelMultiplier],
		BreakfastTime:           raw[StageBreakfastTime],
		DressingTime:            raw[StageDressingTime],
		TransportEfficiency:     raw[StageTransportEfficiency],
		RoutineEfficiency:       raw[StageRoutineEfficiency],
	}
	return nil
}

// Prediction is the outcome of one engine call.
type Prediction struct {
	Input              Input         `json:"input"`
	SuccessProbability float64       `json:"success_probability"`
	Intermediates      Intermediates `json:"intermediates"`
	// WakeClamped is set when a wake time was moved into [WakeMin, WakeMax].
	WakeClamped bool `json:"wake_clamped,omitempty"`
	// RunFallback is set when no run rule fired and the default was used.
	RunFallback bool `json:"run_fallback,omitempty"`
}
