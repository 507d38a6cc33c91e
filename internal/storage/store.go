package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dentaltrack/student-progress/internal/models"
	"github.com/rs/zerolog"
)

// Store is the injected storage port over the single JSON data file.
// All access goes through View and Update; Update serializes every
// mutation behind one writer lock, so a read-modify-write of a user's
// quota, streaks and badges is atomic with the case write that caused
// it.
type Store struct {
	path   string
	mu     sync.RWMutex
	data   *models.Database
	logger zerolog.Logger
}

// Open loads the data file, seeding it with the initial document when
// it does not exist yet.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read data file: %w", err)
		}
		s.data = seedData()
		if err := s.flush(); err != nil {
			return nil, fmt.Errorf("failed to seed data file: %w", err)
		}
		logger.Info().Str("path", path).Msg("Data file seeded")
		return s, nil
	}

	var data models.Database
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode data file: %w", err)
	}
	s.data = &data

	return s, nil
}

// View runs fn against the current document under a shared lock. The
// callback must not retain or mutate the document.
func (s *Store) View(ctx context.Context, fn func(*models.Database) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// Update runs fn against the document under the writer lock and, when
// fn succeeds, persists the whole document. When fn fails nothing is
// written and the in-memory document is rolled back.
func (s *Store) Update(ctx context.Context, fn func(*models.Database) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := cloneData(s.data)
	if err != nil {
		return fmt.Errorf("failed to snapshot data: %w", err)
	}

	if err := fn(s.data); err != nil {
		s.data = snapshot
		return err
	}

	if err := s.flush(); err != nil {
		s.data = snapshot
		return fmt.Errorf("failed to persist data: %w", err)
	}
	return nil
}

// flush writes via a temp file and rename so a crash mid-write never
// truncates the data file. Caller holds the writer lock.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func cloneData(data *models.Database) (*models.Database, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var clone models.Database
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, err
	}
	return &clone, nil
}
