package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// into single spaces, dropping control characters along the way.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		case unicode.IsControl(r):
			continue
		default:
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(result.String())
}

// NormalizeNotes cleans free-text booking notes before they go upstream.
func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}

// NormalizeComment cleans review comments and staff responses.
func NormalizeComment(comment string) string {
	return TrimAndNormalize(comment)
}
