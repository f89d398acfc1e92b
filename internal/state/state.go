// Package state persists the small amount of per-install bookkeeping CodeFind
// keeps between runs: the install ID, first-run time, and the most recent
// model and doctor results.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/codefind-ai/codefind/internal/config"
	"github.com/codefind-ai/codefind/internal/logging"
)

var ErrNotFound = errors.New("not found")

// State is the on-disk record at ~/.codefind/state.json.
type State struct {
	InstallID    string    `json:"install_id"`
	FirstRunAt   time.Time `json:"first_run_at"`
	LastModel    string    `json:"last_model,omitempty"`
	LastDoctorAt time.Time `json:"last_doctor_at"`
}

// Store reads and writes the state file.
type Store struct {
	path string
	lock *fileLock
}

// NewStore creates a store for the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path, lock: newFileLock(path)}
}

// DefaultStore creates a store at the standard ~/.codefind/state.json
// location.
func DefaultStore() *Store {
	return NewStore(config.GetPaths().StatePath())
}

// Load reads the state file. ErrNotFound means no state has been written yet.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &st, nil
}

// Save writes the state atomically under the file lock.
func (s *Store) Save(st *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to temp file first, then rename (atomic operation)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename state file: %w", err)
	}

	return nil
}

// LoadOrInit loads the state, minting a fresh one on first run. A corrupt
// state file is replaced rather than treated as fatal.
func (s *Store) LoadOrInit() (*State, error) {
	st, err := s.Load()
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logging.Warn().Str("path", s.path).Err(err).Msg("state file unreadable, reinitializing")
	}

	st = &State{
		InstallID:  ulid.Make().String(),
		FirstRunAt: time.Now().UTC(),
	}
	if err := s.Save(st); err != nil {
		return nil, err
	}
	return st, nil
}
