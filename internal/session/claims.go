package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is returned when a bearer credential cannot be parsed. It is
// always recoverable: callers treat an undecodable credential as no session.
var ErrDecode = errors.New("session: malformed bearer credential")

// Claims are the identity attributes derived from the bearer credential.
// They are never set independently of a token.
type Claims struct {
	SubjectID   string
	Email       string
	ProfileType string
	DisplayName string
}

// DecodeClaims parses the claims segment of a bearer credential. The token
// is three dot-delimited segments; the second is URL-safe base64 JSON. Both
// base64 alphabets and missing padding are tolerated because the issuer has
// been observed emitting either. Pure function, no I/O.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return Claims{}, fmt.Errorf("%w: want 3 segments, got %d", ErrDecode, len(parts))
	}

	seg := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	seg = strings.TrimRight(seg, "=")
	payload, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, fmt.Errorf("%w: claims are not JSON", ErrDecode)
	}

	claims := Claims{
		SubjectID:   stringClaim(raw, "sub"),
		Email:       stringClaim(raw, "email"),
		ProfileType: stringClaim(raw, "userProfileType"),
		DisplayName: stringClaim(raw, "name"),
	}
	if claims.SubjectID == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrDecode)
	}
	return claims, nil
}

// stringClaim coerces a claim value to string; numeric claims (the profile
// type code arrives as a number from some issuers) are formatted plainly.
func stringClaim(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}
