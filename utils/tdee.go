package utils

import (
	"errors"
	"math"
)

// activityMultipliers fixes the five recognized activity tiers. Anything else
// makes the estimate undefined.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extra_active":      1.9,
}

// ErrTDEEUndefined is returned when the estimate has no defined value for the
// given profile.
var ErrTDEEUndefined = errors.New("daily energy need undefined for this profile")

// CalculateTDEE estimates daily energy expenditure (kcal) via the
// Mifflin-St Jeor equation. Height is in centimeters, weight in kilograms.
// The formula has no branch for gender "other"; that case stays undefined.
func CalculateTDEE(gender string, age int, heightCm, weightKg float64, activityLevel string) (int, error) {
	if age < 0 || heightCm < 0 || weightKg < 0 {
		return 0, ErrTDEEUndefined
	}

	var bmr float64
	switch gender {
	case "male":
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
	case "female":
		bmr = 10*weightKg + 6.25*heightCm - 5*float64(age) - 161
	default:
		return 0, ErrTDEEUndefined
	}

	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		return 0, ErrTDEEUndefined
	}

	return int(math.Round(bmr * multiplier)), nil
}
