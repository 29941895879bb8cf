// package session owns the authenticated identity for the running process:
// durable credential storage, the in-memory session state machine, and the
// access-control guard consulted before protected views run.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/shared"
)

// SessionFileName is the fixed name of the credential record under the state directory.
const SessionFileName = "session.json"

// Store persists at most one session across process restarts.
//
// The record is the signin response body, JSON-serialized, written to a
// single fixed path. Implementations must treat missing or malformed data
// as "no session" rather than an error.
type Store interface {
	// Save writes the full session record. Rejects sessions without an
	// access token with shared.ErrInvalidSession.
	Save(session *models.Session) error

	// Load reads the stored session. Returns (nil, nil) when no record
	// exists or the stored value fails to parse.
	Load() (*models.Session, error)

	// Clear removes the record unconditionally. Clearing an absent record
	// is a no-op.
	Clear() error
}

// FileStore implements [Store] over a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path.
// An empty path resolves to ~/.flixctl/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := shared.HomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, SessionFileName)
	}
	return &FileStore{path: path}, nil
}

// Path returns the file backing this store.
func (s *FileStore) Path() string {
	return s.path
}

// Save serializes the session and writes it under the fixed path.
func (s *FileStore) Save(session *models.Session) error {
	if session == nil || session.AccessToken == "" {
		return fmt.Errorf("%w: missing access token", shared.ErrInvalidSession)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load reads and deserializes the stored session if present.
// Malformed data is treated as no session, never a fatal error.
func (s *FileStore) Load() (*models.Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, nil
	}
	if session.AccessToken == "" {
		return nil, nil
	}

	return &session, nil
}

// Clear removes the session file. Idempotent.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
