package healthdata

import "math"

const ExerciseWeeklyTarget = 300.0

type SubScore struct {
	Label string
	Value float64
}

type HealthScore struct {
	Scores     []SubScore
	Average    float64
	Computable bool
}

func HeartRateScore(hr *float64) float64 {
	if !Present(hr) {
		return 0
	}
	v := *hr
	switch {
	case v >= 60 && v <= 80:
		return 100
	case v >= 50 && v <= 100:
		return 80
	default:
		return 60
	}
}

func BMIScore(bmi *float64) float64 {
	if !Present(bmi) {
		return 0
	}
	v := *bmi
	switch {
	case v >= 18.5 && v < 24:
		return 100
	case (v >= 24 && v < 27) || (v >= 17 && v < 18.5):
		return 70
	default:
		return 50
	}
}

// ExerciseScore scales linearly against the weekly target and caps at 100.
func ExerciseScore(minutes *float64) float64 {
	m := Float(minutes, 0)
	if m <= 0 {
		return 0
	}
	return math.Min(100, m/ExerciseWeeklyTarget*100)
}

func BloodPressureScore(bp *string) float64 {
	parsed, err := ParseBloodPressure(bp)
	if err != nil {
		return 0
	}
	switch parsed.Category() {
	case BPIdeal:
		return 100
	case BPElevated:
		return 70
	default:
		return 50
	}
}

// ComputeHealthScore builds the four radar sub-scores and their average.
func ComputeHealthScore(rec Record) HealthScore {
	scores := []SubScore{
		{Label: "心率", Value: HeartRateScore(rec.HeartRate)},
		{Label: "BMI", Value: BMIScore(rec.BMI)},
		{Label: "運動量", Value: ExerciseScore(rec.ExerciseDuration)},
		{Label: "血壓", Value: BloodPressureScore(rec.BloodPressure)},
	}

	computable := rec.HeartRate != nil || rec.BMI != nil || rec.ExerciseDuration != nil || rec.BloodPressure != nil

	var sum float64
	for _, s := range scores {
		sum += s.Value
	}

	return HealthScore{
		Scores:     scores,
		Average:    sum / float64(len(scores)),
		Computable: computable,
	}
}
