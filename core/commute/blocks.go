package commute

import "math"

// BaseAvailability scores how available the parents are from their wake
// times, before any run is accounted for. Both parents up by 6:30 scores
// 8.5 and above, one early parent 6.0 to 6.5, two late parents at most 6.
func BaseAvailability(wakeA, wakeB float64) float64 {
	const early = 6.5
	switch {
	case wakeA <= early && wakeB <= early:
		return 8.5 + (early - math.Max(wakeA, wakeB))
	case wakeA <= early || wakeB <= early:
		return 6.0 + (early-math.Min(wakeA, wakeB))*0.5
	default:
		return math.Max(1.0, 5.0-(math.Max(wakeA, wakeB)-7.0)*2.0)
	}
}

// RunReduction returns the availability lost to a run of the given length.
func RunReduction(runMinutes float64) float64 {
	switch {
	case runMinutes < 10:
		return 0
	case runMinutes < 30:
		return 0.75
	case runMinutes < 60:
		return 1.75
	case runMinutes < 90:
		return 2.75
	default:
		return 3.5
	}
}

// FinalAvailability subtracts the run reduction and clamps to [0, 10].
func FinalAvailability(base, runMinutes float64) float64 {
	return clamp(base-RunReduction(runMinutes), 0, 10)
}

var travelMultipliers = map[int]float64{
	1: 1.0, // clear
	2: 1.0, // cloudy
	3: 1.2, // light rain
	4: 1.6, // heavy rain
	5: 2.2, // snow
}

// WeatherTravelMultiplier returns the travel time factor for a weather
// ordinal. Unknown ordinals travel at 1.0.
func WeatherTravelMultiplier(weatherOrdinal float64) float64 {
	if weatherOrdinal != math.Trunc(weatherOrdinal) {
		return 1.0
	}
	if m, ok := travelMultipliers[int(weatherOrdinal)]; ok {
		return m
	}
	return 1.0
}

// BreakfastTime returns breakfast minutes for an availability score.
func BreakfastTime(availability float64) float64 {
	switch {
	case availability >= 7:
		return 15.0
	case availability >= 4:
		return 27.5
	default:
		return 40.0
	}
}

// DressingTime returns dressing minutes for an availability score.
func DressingTime(availability float64) float64 {
	switch {
	case availability >= 7:
		return 13.0
	case availability >= 4:
		return 25.0
	default:
		return 36.0
	}
}

// weekdayTransportFactor penalizes school-day traffic.
const weekdayTransportFactor = 0.9

// TransportEfficiency scores transport logistics. dayOrdinal is 1 on
// weekdays.
func TransportEfficiency(availability, dayOrdinal float64) float64 {
	score := availability
	if dayOrdinal == 1 {
		score *= weekdayTransportFactor
	}
	return clamp(score, 0, 10)
}

// Routine efficiency levels.
const (
	RoutineExcellent = 9.0
	RoutineModerate  = 6.0
	RoutinePoor      = 2.0
)

// RoutineEfficiency consolidates breakfast and dressing minutes.
func RoutineEfficiency(breakfast, dressing float64) float64 {
	total := breakfast + dressing
	switch {
	case total <= 30:
		return RoutineExcellent
	case total <= 50:
		return RoutineModerate
	default:
		return RoutinePoor
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
