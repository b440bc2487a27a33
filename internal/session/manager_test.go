package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) (*Manager, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "state", "credential.json"))
	return NewManager(store), store
}

func TestBootstrapWithoutCredentialIsAnonymous(t *testing.T) {
	mgr, _ := newTestManager(t)
	if mgr.Status() != StatusLoading {
		t.Fatalf("pre-bootstrap status = %s, want loading", mgr.Status())
	}
	if err := mgr.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if mgr.Status() != StatusAnonymous {
		t.Fatalf("status = %s, want anonymous", mgr.Status())
	}
}

func TestBootstrapWithValidCredential(t *testing.T) {
	mgr, store := newTestManager(t)
	token := tokenWithPayload(t, `{"sub":"user-7","email":"s@e.llr","name":"Sam"}`)
	if err := store.Save(token); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := mgr.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	if mgr.Status() != StatusAuthenticated {
		t.Fatalf("status = %s, want authenticated", mgr.Status())
	}
	if mgr.Claims().SubjectID != "user-7" {
		t.Fatalf("claims = %+v", mgr.Claims())
	}
	if mgr.Token() != token {
		t.Fatalf("token not exposed to api layer")
	}
}

func TestBootstrapClearsUndecodableCredential(t *testing.T) {
	mgr, store := newTestManager(t)
	if err := store.Save("garbage-token"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := mgr.Bootstrap(); err != nil {
		t.Fatalf("bootstrap must not fail on a bad credential: %v", err)
	}
	if mgr.Status() != StatusAnonymous {
		t.Fatalf("status = %s, want anonymous", mgr.Status())
	}
	if stored, err := store.Load(); err != nil || stored != "" {
		t.Fatalf("bad credential not cleared: %q %v", stored, err)
	}
}

func TestSignInRejectsAndNeverPersistsBadToken(t *testing.T) {
	mgr, store := newTestManager(t)
	if err := mgr.SignIn("nope"); !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if stored, _ := store.Load(); stored != "" {
		t.Fatalf("undecodable credential was persisted: %q", stored)
	}
}

func TestSignInThenSignOut(t *testing.T) {
	mgr, store := newTestManager(t)
	token := tokenWithPayload(t, `{"sub":"user-9","email":"x@y.z"}`)
	if err := mgr.SignIn(token); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if stored, _ := store.Load(); stored != token {
		t.Fatalf("credential not persisted")
	}
	if err := mgr.SignOut(); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if mgr.Status() != StatusAnonymous || mgr.Token() != "" {
		t.Fatalf("sign-out left session state behind")
	}
	if _, err := os.Stat(store.path); !os.IsNotExist(err) {
		t.Fatalf("credential file still present after sign-out")
	}
}
