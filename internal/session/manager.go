// internal/session/manager.go
//
// The session manager owns the process-wide authentication state: one
// bearer credential, the claims derived from it, and nothing else. It is an
// explicit object with injected storage rather than a package-level global,
// so tests construct a fresh instance each time.

package session

import (
	"fmt"
	"sync"
)

// Status is the coarse session state the rest of the client keys off.
type Status string

const (
	// StatusLoading means Bootstrap has not resolved yet. No authenticated
	// flow may start while the session is loading.
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// Manager bootstraps and persists the bearer credential and derives identity
// claims from it. Safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	store  Store
	status Status
	token  string
	claims Claims
}

// NewManager creates a manager in the Loading state.
func NewManager(store Store) *Manager {
	return &Manager{store: store, status: StatusLoading}
}

// Bootstrap reads the persisted credential and derives claims from it.
// An undecodable credential is cleared and the session lands Anonymous;
// decode failure is never surfaced as a user-facing error.
func (m *Manager) Bootstrap() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("session: bootstrap: %w", err)
	}
	if token == "" {
		m.setAnonymousLocked()
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		// Stale or corrupt credential. Equivalent to no session.
		if clearErr := m.store.Clear(); clearErr != nil {
			return fmt.Errorf("session: bootstrap: %w", clearErr)
		}
		m.setAnonymousLocked()
		return nil
	}

	m.token = token
	m.claims = claims
	m.status = StatusAuthenticated
	return nil
}

// SignIn persists the credential and derives claims. An undecodable
// credential fails with ErrDecode and is never persisted.
func (m *Manager) SignIn(token string) error {
	claims, err := DecodeClaims(token)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.token = token
	m.claims = claims
	m.status = StatusAuthenticated
	return nil
}

// SignOut clears all persisted identity state. Dependent state (in-flight
// verification challenges, upload quotas) is the responsibility of its
// owners, not the session manager.
func (m *Manager) SignOut() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.setAnonymousLocked()
	return nil
}

// Status reports the current session state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Claims returns the identity claims of the authenticated session. The zero
// value is returned while anonymous or loading.
func (m *Manager) Claims() Claims {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claims
}

// Token returns the current bearer credential, or "" when anonymous. This
// satisfies the api.TokenSource interface.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) setAnonymousLocked() {
	m.token = ""
	m.claims = Claims{}
	m.status = StatusAnonymous
}
