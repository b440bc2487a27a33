package profile

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDraftStoreRoundTrip(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	store := NewDraftStore(
		filepath.Join(t.TempDir(), "state", "profile-draft.json"),
		WithClock(func() time.Time { return fixed }),
	)

	if _, _, found, err := store.Load(); err != nil || found {
		t.Fatalf("fresh store: found=%v err=%v", found, err)
	}

	draft := validDraft()
	draft.ServingStates = []string{"Texas", "Ohio"}
	if err := store.Save(draft); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, savedAt, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !savedAt.Equal(fixed) {
		t.Fatalf("savedAt = %s", savedAt)
	}
	if got.Name != draft.Name || len(got.ServingStates) != 2 {
		t.Fatalf("loaded draft = %+v", got)
	}
	if got.PassportUploads[0] != draft.PassportUploads[0] {
		t.Fatalf("uploaded URLs must survive persistence: %+v", got.PassportUploads)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, _, found, _ := store.Load(); found {
		t.Fatal("draft still present after clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("double clear must be a no-op: %v", err)
	}
}
