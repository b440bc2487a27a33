package verify

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "3001234567", "3001234567"},
		{"leading trunk zero", "03001234567", "3001234567"},
		{"country prefix", "923001234567", "3001234567"},
		{"formatted with punctuation", "+92 (300) 123-4567", "3001234567"},
		{"spaces and dashes", "0300 123 4567", "3001234567"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != nil {
				t.Fatalf("normalize(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
			// Idempotence: a normalized number survives a second pass.
			again, err := Normalize(got)
			if err != nil || again != got {
				t.Fatalf("normalize(%q) not idempotent: %q %v", got, again, err)
			}
		})
	}
}

func TestNormalizeRejectsUnreachableLengths(t *testing.T) {
	tests := []string{
		"",
		"12345",
		"300123456",     // nine digits
		"33001234567",   // eleven digits, no trunk zero
		"913001234567",  // twelve digits, wrong country prefix
		"9230012345678", // thirteen digits
		"no digits at all",
	}
	for _, in := range tests {
		if _, err := Normalize(in); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("normalize(%q) err = %v, want ErrInvalidFormat", in, err)
		}
	}
}
