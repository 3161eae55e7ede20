package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidWeather is returned for an unrecognized weather label.
	ErrInvalidWeather = errors.New("invalid weather")
	// ErrInvalidDayType is returned for an unrecognized day type label.
	ErrInvalidDayType = errors.New("invalid day type")
)

// Weather is the morning weather condition. The zero value is invalid.
type Weather int

const (
	WeatherClear Weather = iota + 1
	WeatherCloudy
	WeatherLightRain
	WeatherHeavyRain
	WeatherSnow
)

// Weathers lists every valid condition from best to worst.
var Weathers = []Weather{WeatherClear, WeatherCloudy, WeatherLightRain, WeatherHeavyRain, WeatherSnow}

var weatherOrdinals = map[Weather]float64{
	WeatherClear:     1,
	WeatherCloudy:    2,
	WeatherLightRain: 3,
	WeatherHeavyRain: 4,
	WeatherSnow:      5,
}

// String returns the wire label of the condition.
func (w Weather) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherCloudy:
		return "cloudy"
	case WeatherLightRain:
		return "light_rain"
	case WeatherHeavyRain:
		return "heavy_rain"
	case WeatherSnow:
		return "snow"
	default:
		return "unknown"
	}
}

// Valid reports whether w is one of the defined conditions.
func (w Weather) Valid() bool {
	_, ok := weatherOrdinals[w]
	return ok
}

// Ordinal returns the numeric severity 1 (clear) to 5 (snow), or 0 when w is
// invalid.
func (w Weather) Ordinal() float64 { return weatherOrdinals[w] }

// ParseWeather converts a label such as "light_rain" to a Weather.
func ParseWeather(s string) (Weather, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	for _, w := range Weathers {
		if w.String() == label {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeather, s)
}

// MarshalText implements encoding.TextMarshaler.
func (w Weather) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeather, int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Weather) UnmarshalText(b []byte) error {
	v, err := ParseWeather(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// DayType distinguishes school days from weekends. The zero value is invalid.
type DayType int

const (
	DayWeekday DayType = iota + 1
	DayWeekend
)

// String returns the wire label of the day type.
func (d DayType) String() string {
	switch d {
	case DayWeekday:
		return "weekday"
	case DayWeekend:
		return "weekend"
	default:
		return "unknown"
	}
}

// Valid reports whether d is weekday or weekend.
func (d DayType) Valid() bool { return d == DayWeekday || d == DayWeekend }

// Ordinal returns 1 for weekdays and 0 otherwise.
func (d DayType) Ordinal() float64 {
	if d == DayWeekday {
		return 1
	}
	return 0
}

// ParseDayType converts "weekday" or "weekend" to a DayType.
func ParseDayType(s string) (DayType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekday":
		return DayWeekday, nil
	case "weekend":
		return DayWeekend, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayType, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DayType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayType, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DayType) UnmarshalText(b []byte) error {
	v, err := ParseDayType(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
