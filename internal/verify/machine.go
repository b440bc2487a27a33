// internal/verify/machine.go
//
// Phone ownership verification is a small state machine: NotStarted until
// a code is sent, CodeSent while the countdown runs, Verified once the
// server accepts a code. A rejected code drops back to CodeSent without
// touching the countdown; editing the number resets everything.

package verify

import (
	"context"
	"errors"
	"time"

	"github.com/propseller/propseller/internal/api"
)

// CodeTTL is how long a sent code stays usable before the UI offers a
// resend. The server enforces its own expiry; this drives the countdown.
const CodeTTL = 75 * time.Second

// State is the verification stage.
type State string

const (
	StateNotStarted State = "not_started"
	StateCodeSent   State = "code_sent"
	StateVerifying  State = "verifying"
	StateVerified   State = "verified"
)

// ErrInvalidState is returned when a code is submitted outside CodeSent.
// The call performs no network activity.
var ErrInvalidState = errors.New("verify: no code has been sent")

// Sender delivers and checks verification codes. SMSClient is the
// production implementation.
type Sender interface {
	Send(ctx context.Context, phone string) error
	Check(ctx context.Context, phone, code string) error
}

// SMSClient talks to the SMS verification endpoints.
type SMSClient struct {
	api *api.Client
}

// NewSMSClient wraps the shared API client.
func NewSMSClient(client *api.Client) *SMSClient {
	return &SMSClient{api: client}
}

// Send requests a code for the normalized number. The endpoint takes the
// number as a bare JSON string, not an object.
func (c *SMSClient) Send(ctx context.Context, phone string) error {
	return c.api.PostJSON(ctx, "/SMS/send", phone, nil)
}

type checkRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

// Check submits a code for the number. Unlike Send, this endpoint takes
// an object payload.
func (c *SMSClient) Check(ctx context.Context, phone, code string) error {
	return c.api.PostJSON(ctx, "/SMS/verify", checkRequest{PhoneNumber: phone, Code: code}, nil)
}

// Machine tracks one phone verification attempt. Not safe for concurrent
// use; the UI drives it from a single loop.
type Machine struct {
	sms       Sender
	now       func() time.Time
	state     State
	phone     string
	expiresAt time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// NewMachine creates a machine in NotStarted.
func NewMachine(sms Sender, opts ...Option) *Machine {
	m := &Machine{sms: sms, now: time.Now, state: StateNotStarted}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendCode normalizes the number and requests a code. On success the
// machine enters CodeSent and the countdown starts. Calling it again from
// CodeSent is a resend: the countdown restarts and any typed code is
// obsolete. A malformed number fails locally with ErrInvalidFormat.
func (m *Machine) SendCode(ctx context.Context, raw string) error {
	phone, err := Normalize(raw)
	if err != nil {
		return err
	}
	if err := m.sms.Send(ctx, phone); err != nil {
		return err
	}
	m.state = StateCodeSent
	m.phone = phone
	m.expiresAt = m.now().Add(CodeTTL)
	return nil
}

// SubmitCode checks the typed code against the server. Outside CodeSent
// it fails with ErrInvalidState and no network call. A server rejection
// returns the machine to CodeSent with the countdown untouched.
func (m *Machine) SubmitCode(ctx context.Context, code string) error {
	if m.state != StateCodeSent {
		return ErrInvalidState
	}
	m.state = StateVerifying
	if err := m.sms.Check(ctx, m.phone, code); err != nil {
		m.state = StateCodeSent
		return err
	}
	m.state = StateVerified
	return nil
}

// Reset abandons the attempt. The UI calls this when the user edits the
// phone number after a code has been sent.
func (m *Machine) Reset() {
	m.state = StateNotStarted
	m.phone = ""
	m.expiresAt = time.Time{}
}

// State reports the current stage.
func (m *Machine) State() State { return m.state }

// Phone returns the normalized number a code was sent to, or "".
func (m *Machine) Phone() string { return m.phone }

// Remaining is the countdown left on the current code, floored at zero.
func (m *Machine) Remaining() time.Duration {
	if m.state != StateCodeSent && m.state != StateVerifying {
		return 0
	}
	left := m.expiresAt.Sub(m.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown has run out.
func (m *Machine) Expired() bool {
	return m.state == StateCodeSent && m.Remaining() == 0
}
