package http

import "time"

// displayLimit caps a message at display time.  Stored turns are never
// truncated; only the rendered copy is.
const displayLimit = 1000

// displayMessage truncates long messages with a trailing ellipsis.  The
// limit counts runes, not bytes, so a multibyte character is never cut
// in half.
func displayMessage(message string) string {
	runes := []rune(message)
	if len(runes) > displayLimit {
		return string(runes[:displayLimit]) + "..."
	}
	return message
}

// displayTime formats a turn timestamp for the transcript.
func displayTime(ts time.Time) string {
	return ts.Format("2006-01-02 15:04:05")
}
