package utils

import "errors"

// ErrImplausibleBody rejects profile measurements outside the range the
// classification bands below are meaningful for. The non-positive case is
// covered by the range check, so one sentinel serves both.
var ErrImplausibleBody = errors.New("height/weight outside plausible range")

// CalculateBMI computes body mass index from the profile's height (cm) and
// weight (kg) attributes.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrImplausibleBody
	}

	heightM := heightCm / 100.0
	return weightKg / (heightM * heightM), nil
}

// BMICategory maps a BMI value onto the WHO classification bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
