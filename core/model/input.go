package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// WakeMin is the earliest modeled wake time in decimal hours.
	WakeMin = 5.5
	// WakeMax is the latest modeled wake time in decimal hours.
	WakeMax = 8.5
)

// ErrInvalidWake is returned for missing, NaN or infinite wake times.
var ErrInvalidWake = errors.New("invalid wake time")

var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	requestValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	_ = requestValidate.RegisterValidation("finite", validateFinite)
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return false
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
		return false
	}
	v := f.Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Input is the typed input vector of one prediction.
type Input struct {
	Weather     Weather `json:"weather"`
	DayType     DayType `json:"day_type"`
	ParentAWake float64 `json:"parent_a_wake"`
	ParentBWake float64 `json:"parent_b_wake"`
}

// Validate checks enum membership and that wake times are finite numbers.
// Range checks are left to the engine's wake policy.
func (in Input) Validate() error {
	if !in.Weather.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidWeather, int(in.Weather))
	}
	if !in.DayType.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDayType, int(in.DayType))
	}
	for name, v := range map[string]float64{"parent_a_wake": in.ParentAWake, "parent_b_wake": in.ParentBWake} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWake, name, v)
		}
	}
	return nil
}

// Request is the untyped form of Input as received from the CLI, HTTP or
// scenario files. Wake times are pointers so an omitted value is rejected
// instead of read as midnight.
type Request struct {
	Weather     string   `json:"weather" yaml:"weather" validate:"required,oneof=clear cloudy light_rain heavy_rain snow"`
	DayType     string   `json:"day_type" yaml:"day_type" validate:"required,oneof=weekday weekend"`
	ParentAWake *float64 `json:"parent_a_wake" yaml:"parent_a_wake" validate:"required,finite"`
	ParentBWake *float64 `json:"parent_b_wake" yaml:"parent_b_wake" validate:"required,finite"`
}

// Wake returns a pointer to v for building a Request.
func Wake(v float64) *float64 { return &v }

// NewRequest builds a Request with both wake times set.
func NewRequest(weather, dayType string, wakeA, wakeB float64) Request {
	return Request{Weather: weather, DayType: dayType, ParentAWake: Wake(wakeA), ParentBWake: Wake(wakeB)}
}

// Input validates the request and converts it to a typed Input.
func (r Request) Input() (Input, error) {
	if err := requestValidate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Input{}, r.fieldError(verrs[0])
		}
		return Input{}, err
	}
	w, err := ParseWeather(r.Weather)
	if err != nil {
		return Input{}, err
	}
	d, err := ParseDayType(r.DayType)
	if err != nil {
		return Input{}, err
	}
	return Input{Weather: w, DayType: d, ParentAWake: *r.ParentAWake, ParentBWake: *r.ParentBWake}, nil
}

func (r Request) fieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Weather":
		return fmt.Errorf("%w: %q", ErrInvalidWeather, r.Weather)
	case "DayType":
		return fmt.Errorf("%w: %q", ErrInvalidDayType, r.DayType)
	default:
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s is missing", ErrInvalidWake, fe.Field())
		}
		return fmt.Errorf("%w: %s=%v", ErrInvalidWake, fe.Field(), fe.Value())
	}
}

// IsInvalid reports whether err stems from an invalid input value.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidWeather) || errors.Is(err, ErrInvalidDayType) || errors.Is(err, ErrInvalidWake)
}
