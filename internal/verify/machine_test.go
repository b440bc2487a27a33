package verify

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSender struct {
	sendErr  error
	checkErr error
	sent     []string
	checked  []string
}

func (f *fakeSender) Send(_ context.Context, phone string) error {
	f.sent = append(f.sent, phone)
	return f.sendErr
}

func (f *fakeSender) Check(_ context.Context, phone, code string) error {
	f.checked = append(f.checked, phone+":"+code)
	return f.checkErr
}

func newTestMachine(sms Sender) (*Machine, *time.Time) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMachine(sms, WithClock(func() time.Time { return now }))
	return m, &now
}

func TestSendCodeStartsCountdown(t *testing.T) {
	sms := &fakeSender{}
	m, now := newTestMachine(sms)

	if err := m.SendCode(context.Background(), "0300 123 4567"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if m.State() != StateCodeSent || m.Phone() != "3001234567" {
		t.Fatalf("state=%s phone=%s", m.State(), m.Phone())
	}
	if m.Remaining() != CodeTTL {
		t.Fatalf("remaining = %s, want %s", m.Remaining(), CodeTTL)
	}
	if len(sms.sent) != 1 || sms.sent[0] != "3001234567" {
		t.Fatalf("sent = %v, want the normalized number", sms.sent)
	}

	*now = now.Add(CodeTTL + time.Second)
	if !m.Expired() {
		t.Fatal("countdown did not expire")
	}
}

func TestSendCodeRejectsMalformedNumberLocally(t *testing.T) {
	sms := &fakeSender{}
	m, _ := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "12345"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
	if len(sms.sent) != 0 {
		t.Fatal("network was hit for a malformed number")
	}
	if m.State() != StateNotStarted {
		t.Fatalf("state = %s", m.State())
	}
}

func TestSendCodeFailureLeavesStateUnchanged(t *testing.T) {
	sms := &fakeSender{sendErr: errors.New("boom")}
	m, _ := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "3001234567"); err == nil {
		t.Fatal("expected send failure")
	}
	if m.State() != StateNotStarted || m.Remaining() != 0 {
		t.Fatalf("failed send changed state: %s", m.State())
	}
}

func TestResendRestartsCountdown(t *testing.T) {
	sms := &fakeSender{}
	m, now := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "3001234567"); err != nil {
		t.Fatalf("send: %v", err)
	}
	*now = now.Add(60 * time.Second)
	if err := m.SendCode(context.Background(), "3001234567"); err != nil {
		t.Fatalf("resend: %v", err)
	}
	if m.Remaining() != CodeTTL {
		t.Fatalf("remaining after resend = %s, want full %s", m.Remaining(), CodeTTL)
	}
	if len(sms.sent) != 2 {
		t.Fatalf("sent %d codes, want 2", len(sms.sent))
	}
}

func TestSubmitCodeOutsideCodeSentIsLocalError(t *testing.T) {
	sms := &fakeSender{}
	m, _ := newTestMachine(sms)
	if err := m.SubmitCode(context.Background(), "1234"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if len(sms.checked) != 0 {
		t.Fatal("network was hit before a code was sent")
	}
}

func TestSubmitCodeVerifies(t *testing.T) {
	sms := &fakeSender{}
	m, _ := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "3001234567"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := m.SubmitCode(context.Background(), "4321"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if m.State() != StateVerified {
		t.Fatalf("state = %s", m.State())
	}
	if sms.checked[0] != "3001234567:4321" {
		t.Fatalf("checked = %v", sms.checked)
	}
}

func TestRejectedCodeReturnsToCodeSentWithCountdownIntact(t *testing.T) {
	sms := &fakeSender{checkErr: errors.New("wrong code")}
	m, now := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "3001234567"); err != nil {
		t.Fatalf("send: %v", err)
	}
	*now = now.Add(30 * time.Second)
	before := m.Remaining()

	if err := m.SubmitCode(context.Background(), "0000"); err == nil {
		t.Fatal("expected rejection")
	}
	if m.State() != StateCodeSent {
		t.Fatalf("state = %s, want code_sent", m.State())
	}
	if m.Remaining() != before {
		t.Fatalf("rejection moved the countdown: %s -> %s", before, m.Remaining())
	}

	// The same attempt can still succeed.
	sms.checkErr = nil
	if err := m.SubmitCode(context.Background(), "4321"); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if m.State() != StateVerified {
		t.Fatalf("state = %s", m.State())
	}
}

func TestResetAbandonsAttempt(t *testing.T) {
	sms := &fakeSender{}
	m, _ := newTestMachine(sms)
	if err := m.SendCode(context.Background(), "3001234567"); err != nil {
		t.Fatalf("send: %v", err)
	}
	m.Reset()
	if m.State() != StateNotStarted || m.Phone() != "" || m.Remaining() != 0 {
		t.Fatalf("reset left state: %s %q %s", m.State(), m.Phone(), m.Remaining())
	}
	if err := m.SubmitCode(context.Background(), "1234"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState after reset", err)
	}
}
