package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// RemoteError is a rejection the server itself produced. Its message is kept
// near-verbatim because it is usually the most specific information we have
// (duplicate registration, invalid code, deleted profile, and so on).
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api: server rejected request (%d): %s", e.Status, e.Message)
}

// IsRemote reports whether err carries a server-produced rejection.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// RemoteMessage extracts the server's message from err, or "" when err is a
// transport-level failure.
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	return ""
}

// errorEnvelope covers the shapes the backend uses for structured errors.
// Some handlers return {"errors": {...}}, others {"details": "..."} or
// {"message": "..."}; several return bare text.
type errorEnvelope struct {
	Errors  map[string][]string `json:"errors"`
	Details string              `json:"details"`
	Message string              `json:"message"`
}

// newRemoteError distils an HTTP error response body into a RemoteError,
// preferring the most specific field available.
func newRemoteError(status int, body []byte) *RemoteError {
	text := strings.TrimSpace(string(body))

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Errors) > 0 {
			return &RemoteError{Status: status, Message: joinFieldErrors(env.Errors)}
		}
		if env.Details != "" {
			return &RemoteError{Status: status, Message: env.Details}
		}
		if env.Message != "" {
			return &RemoteError{Status: status, Message: env.Message}
		}
	}

	// The body may be a JSON-encoded string or raw text.
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return &RemoteError{Status: status, Message: plain}
	}
	if text != "" {
		return &RemoteError{Status: status, Message: text}
	}
	return &RemoteError{Status: status, Message: http.StatusText(status)}
}

func joinFieldErrors(fields map[string][]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = append(parts, strings.Join(fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}
