package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), SessionFileName))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestFileStore(t *testing.T) {
	t.Run("Save and Load round-trip", func(t *testing.T) {
		store := newTestStore(t)

		session := &models.Session{
			AccessToken: "token-abc",
			UserID:      7,
			Email:       "viewer@example.com",
			FirstName:   "Ada",
			Roles:       []string{"ROLE_USER"},
		}

		if err := store.Save(session); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected a session, got nil")
		}
		if loaded.AccessToken != "token-abc" {
			t.Errorf("expected token token-abc, got %s", loaded.AccessToken)
		}
		if loaded.Email != "viewer@example.com" {
			t.Errorf("expected email viewer@example.com, got %s", loaded.Email)
		}
		if len(loaded.Roles) != 1 || loaded.Roles[0] != "ROLE_USER" {
			t.Errorf("expected roles [ROLE_USER], got %v", loaded.Roles)
		}
	})

	t.Run("Save preserves the server payload verbatim", func(t *testing.T) {
		store := newTestStore(t)

		// Fields this client does not model must survive a round-trip.
		payload := `{"accessToken":"tok","id":3,"email":"a@b.co","firstName":"A","roles":["ROLE_USER"],"avatarUrl":"https://cdn/x.png"}`
		var session models.Session
		if err := json.Unmarshal([]byte(payload), &session); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		if err := store.Save(&session); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		raw, err := os.ReadFile(store.Path())
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(raw) != payload {
			t.Errorf("stored record differs from server payload:\n got %s\nwant %s", raw, payload)
		}
	})

	t.Run("Save rejects a session without an access token", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Save(&models.Session{Email: "a@b.co"})
		if !errors.Is(err, shared.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession, got %v", err)
		}

		if err := store.Save(nil); !errors.Is(err, shared.ErrInvalidSession) {
			t.Errorf("expected ErrInvalidSession for nil session, got %v", err)
		}

		if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
			t.Error("rejected save should not create a file")
		}
	})

	t.Run("Load returns nil for an absent file", func(t *testing.T) {
		store := newTestStore(t)

		session, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error for absent file, got %v", err)
		}
		if session != nil {
			t.Errorf("expected nil session, got %+v", session)
		}
	})

	t.Run("Load treats malformed data as no session", func(t *testing.T) {
		store := newTestStore(t)

		if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		session, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error for malformed file, got %v", err)
		}
		if session != nil {
			t.Errorf("expected nil session, got %+v", session)
		}
	})

	t.Run("Load treats a record without a token as no session", func(t *testing.T) {
		store := newTestStore(t)

		if err := os.WriteFile(store.Path(), []byte(`{"email":"a@b.co"}`), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		session, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if session != nil {
			t.Errorf("expected nil session, got %+v", session)
		}
	})

	t.Run("Save overwrites the previous record", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Save(&models.Session{AccessToken: "first"}); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := store.Save(&models.Session{AccessToken: "second"}); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		loaded, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.AccessToken != "second" {
			t.Errorf("expected token second, got %s", loaded.AccessToken)
		}
	})

	t.Run("Clear removes the record and is idempotent", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Save(&models.Session{AccessToken: "tok"}); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("second clear should be a no-op, got %v", err)
		}

		session, err := store.Load()
		if err != nil || session != nil {
			t.Errorf("expected empty store after clear, got session=%v err=%v", session, err)
		}
	})

	t.Run("Save writes with owner-only permissions", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Save(&models.Session{AccessToken: "tok"}); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		info, err := os.Stat(store.Path())
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})
}
