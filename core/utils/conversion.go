package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName lowercases a name and trims surrounding whitespace. Two names
// with the same normalized form refer to the same entity. A Caser holds state,
// so one is built per call.
func NormalizeName(name string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(name))
}

// OptionalString returns nil for blank strings and a pointer to the trimmed
// value otherwise, so absent upstream fields are stored as NULL.
func OptionalString(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}
