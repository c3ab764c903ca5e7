// Package stringutil holds small string normalisation helpers shared by
// generated code.
package stringutil

import "strings"

// BlankToEmpty returns "" when s is nil or contains only whitespace, and *s
// otherwise.
func BlankToEmpty(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return ""
	}
	return *s
}

// BlankToEmptyAll applies BlankToEmpty to every element of values.
func BlankToEmptyAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i := range values {
		out[i] = BlankToEmpty(&values[i])
	}
	return out
}
