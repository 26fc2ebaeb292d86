package health

// ProfileBMI computes BMI from a validated profile when both weight (kg)
// and height (cm) are present as numbers.
func ProfileBMI(profile map[string]any) (bmi float64, category string, ok bool) {
	weight, okW := toFloat(profile["weight"])
	height, okH := toFloat(profile["height"])
	if !okW || !okH || height <= 0 {
		return 0, "", false
	}
	bmi = BMI(weight, height)
	return bmi, BMICategory(bmi), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
