package session

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func tokenWithPayload(t *testing.T, payload string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	token := tokenWithPayload(t, `{"sub":"user-42","email":"jane@example.com","userProfileType":1,"name":"Jane Doe"}`)
	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.SubjectID != "user-42" {
		t.Fatalf("subject = %q", claims.SubjectID)
	}
	if claims.Email != "jane@example.com" {
		t.Fatalf("email = %q", claims.Email)
	}
	if claims.ProfileType != "1" {
		t.Fatalf("profile type = %q, want numeric claim coerced to string", claims.ProfileType)
	}
	if claims.DisplayName != "Jane Doe" {
		t.Fatalf("name = %q", claims.DisplayName)
	}
}

func TestDecodeClaimsToleratesStandardAlphabetAndPadding(t *testing.T) {
	// Payload chosen so the standard alphabet emits '+' and '/', plus '='
	// padding. The decoder must accept it anyway.
	payload := `{"sub":"u1","blob":"???>>>???>>"}`
	seg := base64.StdEncoding.EncodeToString([]byte(payload))
	if !strings.ContainsAny(seg, "+/=") {
		t.Fatalf("test payload does not exercise the standard alphabet: %q", seg)
	}
	token := "eyJh." + seg + ".sig"
	claims, err := DecodeClaims(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.SubjectID != "u1" {
		t.Fatalf("subject = %q", claims.SubjectID)
	}
}

func TestDecodeClaimsFailures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"payload not base64", "h.!!!.s"},
		{"payload not json", "h." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".s"},
		{"missing subject", "h." + base64.RawURLEncoding.EncodeToString([]byte(`{"email":"x@y.z"}`)) + ".s"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeClaims(tc.token); !errors.Is(err, ErrDecode) {
				t.Fatalf("err = %v, want ErrDecode", err)
			}
		})
	}
}
