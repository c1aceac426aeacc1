package extract

import "strings"

// Normalize replaces every run of whitespace with a single space and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
