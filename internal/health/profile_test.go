package health

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateProfileAllowList(t *testing.T) {
	in := map[string]any{
		"age":         30,
		"gender":      "female",
		"weight":      70.5,
		"allergies":   []string{"penicillin", "<b>latex</b>"},
		"symptoms":    []any{"fever", 42},
		"ssn":         "123-45-6789",
		"admin":       true,
		"medications": true, // wrong type, dropped with its key
	}

	out := ValidateProfile(in)

	allowed := map[string]struct{}{}
	for _, f := range Fields {
		allowed[f] = struct{}{}
	}
	for key := range out {
		_, ok := allowed[key]
		require.True(t, ok, "unexpected key %q", key)
	}
	require.NotContains(t, out, "ssn")
	require.NotContains(t, out, "admin")
	require.NotContains(t, out, "medications")

	require.Equal(t, 30, out["age"])
	require.Equal(t, "female", out["gender"])
	require.Equal(t, 70.5, out["weight"])
	// Escaped entities survive; the raw characters do not.
	require.Equal(t, []string{"penicillin", "&lt;b&gt;latex&lt;/b&gt;"}, out["allergies"])
	require.Equal(t, []string{"fever", "42"}, out["symptoms"])
}

func TestValidateProfileSanitizesStrings(t *testing.T) {
	out := ValidateProfile(map[string]any{"lifestyle": `smoker <script>"quotes"</script>`})
	s, ok := out["lifestyle"].(string)
	require.True(t, ok)
	require.NotContains(t, s, "<")
	require.NotContains(t, s, ">")
	require.NotContains(t, s, `"`)
}

func TestValidateProfileEmptyInput(t *testing.T) {
	require.Empty(t, ValidateProfile(map[string]any{}))
	require.Empty(t, ValidateProfile(map[string]any{"unknown": "value"}))
}

func TestBMI(t *testing.T) {
	cases := []struct {
		weight, height, want float64
		category             string
	}{
		{70, 175, 22.9, "Normal weight"},
		{100, 170, 34.6, "Obese"},
		{50, 175, 16.3, "Underweight"},
		{80, 170, 27.7, "Overweight"},
	}
	for _, tc := range cases {
		bmi := BMI(tc.weight, tc.height)
		require.InDelta(t, tc.want, bmi, 1e-9)
		require.Equal(t, tc.category, BMICategory(bmi))
	}
}

func TestBMIZeroHeight(t *testing.T) {
	require.Zero(t, BMI(70, 0))
}

func TestProfileBMI(t *testing.T) {
	bmi, category, ok := ProfileBMI(map[string]any{"weight": 70.0, "height": 175})
	require.True(t, ok)
	require.InDelta(t, 22.9, bmi, 1e-9)
	require.Equal(t, "Normal weight", category)

	_, _, ok = ProfileBMI(map[string]any{"weight": 70.0})
	require.False(t, ok)
	_, _, ok = ProfileBMI(map[string]any{"weight": 70.0, "height": "tall"})
	require.False(t, ok)
}
