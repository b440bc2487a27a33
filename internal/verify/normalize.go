// internal/verify/normalize.go
//
// Phone numbers are normalized to a ten-digit subscriber number before any
// network call. Formatting characters are stripped, then a recognized
// country or trunk prefix is removed. Anything that cannot reach ten
// digits is rejected locally.

package verify

import (
	"errors"
	"strings"
)

// ErrInvalidFormat is returned when a phone number cannot be normalized
// to the expected subscriber length. No network call is made for it.
var ErrInvalidFormat = errors.New("verify: phone number is not a valid subscriber number")

const subscriberLength = 10

// Normalize strips formatting and prefixes down to the ten-digit
// subscriber number. It is idempotent: normalizing an already-normalized
// number returns it unchanged.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == subscriberLength+2 && strings.HasPrefix(digits, "92"):
		digits = digits[2:]
	case len(digits) == subscriberLength+1 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	if len(digits) != subscriberLength {
		return "", ErrInvalidFormat
	}
	return digits, nil
}
