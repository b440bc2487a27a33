// internal/profile/draftstore.go
//
// Drafts survive process restarts: a failed submission writes the draft
// (uploaded URLs included) to the state directory, and the editor offers
// it back on the next visit. A successful submission clears it.

package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// draftFile is the on-disk shape under .propseller/state/.
type draftFile struct {
	SavedAt time.Time `json:"savedAt"`
	Draft   Draft     `json:"draft"`
}

// DraftStore persists one in-progress profile draft.
type DraftStore struct {
	path string
	now  func() time.Time
}

// DraftStoreOption customizes a DraftStore during construction.
type DraftStoreOption func(*DraftStore)

// WithClock overrides the clock used for the saved-at timestamp.
func WithClock(clock func() time.Time) DraftStoreOption {
	return func(s *DraftStore) { s.now = clock }
}

// NewDraftStore creates a store backed by the given path.
func NewDraftStore(path string, opts ...DraftStoreOption) *DraftStore {
	store := &DraftStore{path: path, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load reads the saved draft. A missing file means no draft and is not
// an error; the bool reports whether one was found.
func (s *DraftStore) Load() (Draft, time.Time, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Draft{}, time.Time{}, false, nil
		}
		return Draft{}, time.Time{}, false, fmt.Errorf("profile: read draft: %w", err)
	}
	var df draftFile
	if err := json.Unmarshal(data, &df); err != nil {
		return Draft{}, time.Time{}, false, fmt.Errorf("profile: parse draft file: %w", err)
	}
	return df.Draft, df.SavedAt, true, nil
}

// Save writes the draft, creating parent directories as needed.
func (s *DraftStore) Save(d Draft) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("profile: ensure state dir: %w", err)
	}
	data, err := json.MarshalIndent(draftFile{SavedAt: s.now(), Draft: d}, "", "  ")
	if err != nil {
		return fmt.Errorf("profile: encode draft: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("profile: write draft: %w", err)
	}
	return nil
}

// Clear removes the saved draft. Clearing an absent draft is a no-op.
func (s *DraftStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("profile: clear draft: %w", err)
	}
	return nil
}
