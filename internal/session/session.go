// Package session persists the authenticated user between runs. The user
// record is stored as a JSON file in the config directory, written
// atomically so a crash mid-write never leaves a corrupt slot. The slot
// survives restarts until an explicit logout clears it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/teamtask/teamtask/internal/model"
)

// SessionFileName is the file holding the serialized authenticated user.
const SessionFileName = "session.json"

// ErrNoSession indicates no user is currently persisted.
var ErrNoSession = errors.New("no active session")

// Store reads and writes the single session slot under a base directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on the
// first Save, not here, so a read-only probe never touches the filesystem.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// path returns the session file location.
func (s *Store) path() string {
	return filepath.Join(s.dir, SessionFileName)
}

// Save persists the authenticated user, replacing any previous session.
func (s *Store) Save(user *model.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("cannot save session without a user ID")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return atomicWriteFile(s.path(), data, 0600)
}

// Load returns the persisted user, or ErrNoSession when the slot is empty.
// A corrupt slot is reported as an error rather than silently cleared so
// the caller can decide whether to log out.
func (s *Store) Load() (*model.User, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("session file is corrupt: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("session file is corrupt: missing user ID")
	}
	return &user, nil
}

// Clear removes the persisted session. Clearing an empty slot is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Active reports whether a session is persisted without decoding it.
func (s *Store) Active() bool {
	_, err := os.Stat(s.path())
	return err == nil
}

// atomicWriteFile writes data to a file atomically by writing to a
// temporary file first, then renaming. This ensures the target file is
// never in a partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
