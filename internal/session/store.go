package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the bearer credential across process restarts. It is read
// at bootstrap, written at sign-in and cleared at sign-out.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// credentialFile is the on-disk shape under .propseller/state/.
type credentialFile struct {
	Token string `json:"token"`
}

// FileStore keeps the credential in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted credential. A missing file means no credential
// and is not an error.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("session: read credential: %w", err)
	}
	var cf credentialFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return "", fmt.Errorf("session: parse credential file: %w", err)
	}
	return cf.Token, nil
}

// Save writes the credential, creating parent directories as needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session: ensure state dir: %w", err)
	}
	data, err := json.MarshalIndent(credentialFile{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: write credential: %w", err)
	}
	return nil
}

// Clear removes the persisted credential. Clearing an absent credential is
// a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear credential: %w", err)
	}
	return nil
}
