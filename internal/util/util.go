// internal/util/util.go
package util

import (
	"strconv"
	"unicode/utf8"
)

// FormatNumber renders f with the fewest digits that round-trip.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatMillis renders a millisecond duration such as "12ms".
func FormatMillis(ms float64) string {
	return FormatNumber(ms) + "ms"
}

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}
