// Package sanitizer normalizes free-text listing input before validation and
// storage. All functions are idempotent and never return errors; invalid
// input collapses to the empty string.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses internal runs
// of whitespace to single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName normalizes user and car display names (brand, model).
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeLocation normalizes pickup locations for case-insensitive search.
func NormalizeLocation(location string) string {
	return strings.ToLower(TrimAndNormalize(location))
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
