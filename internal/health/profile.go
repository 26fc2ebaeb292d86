// Package health validates patient health profiles and computes the
// derived measures shown in the patient UI.
package health

import (
	"fmt"
	"math"

	"medassist/internal/sanitize"
)

// Fields is the fixed allow-list of health-profile keys.  Anything else is
// silently dropped by ValidateProfile.
var Fields = []string{
	"age", "gender", "weight", "height", "allergies", "medications",
	"medical_conditions", "family_history", "lifestyle", "symptoms",
}

// ValidateProfile keeps only allow-listed keys and cleans their values.
// String values pass through the sanitizer, numbers pass through
// unchanged, list elements are stringified and sanitized, and any other
// value type is dropped along with its key.
func ValidateProfile(info map[string]any) map[string]any {
	cleaned := make(map[string]any)
	for _, field := range Fields {
		value, ok := info[field]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			cleaned[field] = sanitize.Text(v)
		case int:
			cleaned[field] = v
		case int64:
			cleaned[field] = v
		case float64:
			cleaned[field] = v
		case []string:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, sanitize.Text(item))
			}
			cleaned[field] = items
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, sanitize.Text(fmt.Sprint(item)))
			}
			cleaned[field] = items
		}
	}
	return cleaned
}

// BMI computes body mass index from weight in kilograms and height in
// centimetres, rounded to one decimal place.  Non-positive height yields 0.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	meters := heightCm / 100
	return math.Round(weightKg/(meters*meters)*10) / 10
}

// BMICategory buckets a BMI value using the WHO adult cut-offs.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
