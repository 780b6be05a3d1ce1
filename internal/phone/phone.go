// Package phone normalizes Malaysian phone numbers to E.164 before they
// reach the upstream API, so the same subscriber always maps to the same
// account regardless of how the user typed it.
package phone

import "strings"

// Normalize strips formatting characters and coerces the number to a
// +60-prefixed form. "012-345 6789" becomes "+60123456789". Numbers already
// carrying the country code are left semantically intact.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '-', '(', ')':
		default:
			b.WriteRune(r)
		}
	}
	number := b.String()

	switch {
	case number == "":
		return ""
	case strings.HasPrefix(number, "+"):
		return number
	case strings.HasPrefix(number, "0"):
		return "+60" + number[1:]
	case strings.HasPrefix(number, "60"):
		return "+" + number
	default:
		return "+60" + number
	}
}
