package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextStripsDangerousCharacters(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"script tag", `<script>alert("xss")</script>`},
		{"quotes", `it's a "test"`},
		{"angle brackets", "a < b > c"},
		{"mixed", `<img src='x'>"hello"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Text(tc.input)
			require.NotContains(t, out, "<")
			require.NotContains(t, out, ">")
			require.NotContains(t, out, `"`)
			require.NotContains(t, out, "'")
		})
	}
}

func TestTextTrimsWhitespace(t *testing.T) {
	require.Equal(t, "hello", Text("  hello  "))
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"user.name+tag@example.org", true},
		{"not-an-email", false},
		{"a@b", false},
		{"@missing-local.com", false},
		{"a@b.c", false},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			require.Equal(t, tc.want, ValidEmail(tc.email))
		})
	}
}

func TestParseSymptoms(t *testing.T) {
	got := ParseSymptoms("fever, cough;; headache\n\nno")
	// "no" is dropped for being two characters or shorter; the run of
	// delimiters collapses into one split.
	require.Equal(t, []string{"fever", "cough", "headache"}, got)
}

func TestParseSymptomsEmptyInput(t *testing.T) {
	require.Empty(t, ParseSymptoms(""))
	require.Empty(t, ParseSymptoms(",,;\n"))
}

func TestIsEmergency(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"I have severe CHEST PAIN right now", true},
		{"my friend is unconscious", true},
		{"possible allergic reaction to peanuts", true},
		{"I have a mild cold", false},
		{"", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, IsEmergency(tc.message), tc.message)
	}
}
