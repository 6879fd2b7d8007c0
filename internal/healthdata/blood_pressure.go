package healthdata

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrBloodPressureMissing = errors.New("blood pressure missing")
	ErrBloodPressureFormat  = errors.New("blood pressure format invalid")
)

type BPCategory string

const (
	BPIdeal    BPCategory = "ideal"
	BPElevated BPCategory = "elevated"
	BPHigh     BPCategory = "high"
)

type BloodPressure struct {
	Systolic  int
	Diastolic int
}

// ParseBloodPressure parses the "systolic/diastolic" form.
func ParseBloodPressure(s *string) (BloodPressure, error) {
	if s == nil || *s == "" || !strings.Contains(*s, "/") {
		return BloodPressure{}, ErrBloodPressureMissing
	}

	parts := strings.Split(*s, "/")
	if len(parts) != 2 {
		return BloodPressure{}, ErrBloodPressureFormat
	}
	sys, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return BloodPressure{}, ErrBloodPressureFormat
	}
	dia, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return BloodPressure{}, ErrBloodPressureFormat
	}

	return BloodPressure{Systolic: sys, Diastolic: dia}, nil
}

// Category classifies the reading. Ideal is strictly below 120/80, except for
// the exact 120/80 reading, which is reported as ideal too.
func (bp BloodPressure) Category() BPCategory {
	switch {
	case bp.Systolic < 120 && bp.Diastolic < 80:
		return BPIdeal
	case bp.Systolic == 120 && bp.Diastolic == 80:
		return BPIdeal
	case bp.Systolic < 140 && bp.Diastolic < 90:
		return BPElevated
	default:
		return BPHigh
	}
}

type BMICategoryType string

const (
	BMIUnderweight BMICategoryType = "underweight"
	BMINormal      BMICategoryType = "normal"
	BMIOverweight  BMICategoryType = "overweight"
	BMIObese       BMICategoryType = "obese"
)

func BMICategory(bmi float64) BMICategoryType {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 24:
		return BMINormal
	case bmi < 27:
		return BMIOverweight
	default:
		return BMIObese
	}
}
