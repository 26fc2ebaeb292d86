// Package sanitize cleans and validates free-text input before it enters
// a prompt or a stored record.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	strippedChars = regexp.MustCompile(`[<>"']`)
	symptomSplit  = regexp.MustCompile(`[,;\n]+`)
)

// emergencyKeywords flag messages that describe a likely emergency.  The
// flag is computed and surfaced but nothing routes or escalates on it.
var emergencyKeywords = []string{
	"emergency", "urgent", "severe pain", "chest pain", "difficulty breathing",
	"unconscious", "bleeding", "overdose", "suicide", "heart attack",
	"stroke", "seizure", "allergic reaction", "choking",
}

// Text trims the input, HTML-escapes it, and strips any remaining literal
// angle-bracket or quote characters.  No length limit is applied here;
// truncation happens only at display time.
func Text(input string) string {
	escaped := html.EscapeString(strings.TrimSpace(input))
	return strippedChars.ReplaceAllString(escaped, "")
}

// ValidEmail reports whether s looks like local-part@domain.tld with a TLD
// of at least two letters.  Anchored at both ends.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ParseSymptoms splits free text on commas, semicolons, and newlines (runs
// collapse into one delimiter), sanitizes each piece, and drops anything
// empty or at most two characters long after trimming.
func ParseSymptoms(text string) []string {
	parts := symptomSplit.Split(text, -1)
	symptoms := make([]string, 0, len(parts))
	for _, part := range parts {
		clean := Text(part)
		if len(clean) > 2 {
			symptoms = append(symptoms, clean)
		}
	}
	return symptoms
}

// IsEmergency reports whether the message contains any emergency keyword,
// case-insensitively.
func IsEmergency(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
