// Package utils contains small helpers shared across the engine.  Free-text
// comparisons in the booking flow always happen after trimming and
// title-casing, so both live here rather than being re-implemented per
// package.
package utils

import "strings"

// TitleCase trims the input, collapses internal runs of whitespace to a
// single space and capitalizes the first letter of every word while
// lowering the rest.  "  uNiTeD  kingdom " becomes "United Kingdom".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FirstNonEmpty returns the first argument that is non-empty after
// trimming, or "" when none is.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
