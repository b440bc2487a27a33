// internal/profile/realvalue.go
//
// The backend seeds unset profile fields with the literal token "string"
// instead of leaving them empty. Every read of a remote field goes through
// this predicate so the placeholder never leaks into the editor or back
// into a payload.

package profile

import "strings"

const placeholderToken = "string"

// RealString reports whether a remote string field carries an actual
// value rather than emptiness or the placeholder token.
func RealString(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	return !strings.EqualFold(trimmed, placeholderToken)
}

// RealNumber reports whether a numeric field is set. Zero means unset.
func RealNumber(n int) bool {
	return n != 0
}

// RealSlice reports whether a list field has at least one real element.
func RealSlice(values []string) bool {
	for _, v := range values {
		if RealString(v) {
			return true
		}
	}
	return false
}

// CleanString returns the value, or "" when it is not real.
func CleanString(s string) string {
	if !RealString(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// CleanSlice drops placeholder and empty elements, preserving order.
func CleanSlice(values []string) []string {
	var out []string
	for _, v := range values {
		if RealString(v) {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}
