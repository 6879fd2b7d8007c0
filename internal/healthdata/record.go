package healthdata

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const UnknownPatientID = "unknown"

// Record holds one member's metrics as submitted. Nil means "not supplied".
type Record struct {
	PatientID        string   `json:"patient_id"`
	HeartRate        *float64 `json:"heart_rate"`
	Weight           *float64 `json:"weight"`
	Height           *float64 `json:"height"`
	BMI              *float64 `json:"bmi"`
	BloodPressure    *string  `json:"blood_pressure"`
	ExerciseDuration *float64 `json:"exercise_duration"`
}

type FieldError struct {
	Field string
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field [%s]: cannot convert [%v] to a number", e.Field, e.Value)
}

// Normalize turns a decoded JSON object into a Record. Numbers are expected
// to come from a decoder with UseNumber, but plain float64 values work too.
func Normalize(raw map[string]any) (Record, error) {
	rec := Record{
		PatientID: normalizePatientID(raw["patient_id"]),
	}

	numeric := []struct {
		key string
		dst **float64
	}{
		{"heart_rate", &rec.HeartRate},
		{"weight", &rec.Weight},
		{"height", &rec.Height},
		{"bmi", &rec.BMI},
		{"exercise_duration", &rec.ExerciseDuration},
	}
	for _, n := range numeric {
		v, err := toFloat(n.key, raw[n.key])
		if err != nil {
			return Record{}, err
		}
		*n.dst = v
	}

	switch bp := raw["blood_pressure"].(type) {
	case nil:
	case string:
		rec.BloodPressure = &bp
	default:
		s := fmt.Sprint(bp)
		rec.BloodPressure = &s
	}

	return rec, nil
}

func normalizePatientID(v any) string {
	switch id := v.(type) {
	case nil:
		return UnknownPatientID
	case string:
		if id == "" {
			return UnknownPatientID
		}
		return id
	default:
		return fmt.Sprint(id)
	}
}

func toFloat(field string, v any) (*float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, &FieldError{Field: field, Value: v}
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, &FieldError{Field: field, Value: v}
		}
		f = parsed
	default:
		return nil, &FieldError{Field: field, Value: v}
	}
	// NaN and Inf parse fine but cannot be stored as JSON
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &FieldError{Field: field, Value: v}
	}
	return &f, nil
}

// Float returns the value behind p, or def when p is nil.
func Float(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Present reports whether a metric was supplied with a non-zero value
func Present(p *float64) bool {
	return p != nil && *p != 0
}
