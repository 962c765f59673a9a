package utils

import "unicode/utf8"

// Truncate shortens a string to at most maxLen runes, appending an ellipsis
// when anything was cut. Rune-based so CJK content never splits mid-character.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)

	return string(runes[:maxLen]) + "..."
}
