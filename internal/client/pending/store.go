// Package pending is the durable client-side queue of writes that have
// not been confirmed by the service yet. Entries survive process
// restarts and are replayed by the sync reconciler once connectivity
// returns.
package pending

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Kind string

const (
	KindCase     Kind = "cases"
	KindResearch Kind = "research"
)

// Entry wraps a queued submission payload. LocalID is assigned from a
// per-kind auto-increment counter and never leaves the client; the
// server assigns its own entity id on replay. ClientRef is the
// idempotency token sent with the payload so a replayed write the
// server already accepted is not double-counted.
type Entry struct {
	LocalID   int64           `json:"localId"`
	Payload   json.RawMessage `json:"payload"`
	Synced    bool            `json:"synced"`
	ClientRef string          `json:"clientRef,omitempty"`
	QueuedAt  time.Time       `json:"queuedAt"`
}

type queueFile struct {
	NextID map[Kind]int64   `json:"nextId"`
	Queues map[Kind][]Entry `json:"queues"`
}

// Store is a file-backed FIFO queue per kind. Every operation loads and
// persists the backing file, so the queue is durable at each step.
type Store struct {
	path string
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	s := &Store{path: path}
	// Validate an existing file up front instead of failing later.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Enqueue appends the payload to the kind's queue with a fresh local id
// and synced=false.
func (s *Store) Enqueue(kind Kind, payload interface{}, clientRef string) (*Entry, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qf, err := s.load()
	if err != nil {
		return nil, err
	}

	qf.NextID[kind]++
	entry := Entry{
		LocalID:   qf.NextID[kind],
		Payload:   raw,
		Synced:    false,
		ClientRef: clientRef,
		QueuedAt:  time.Now().UTC(),
	}
	qf.Queues[kind] = append(qf.Queues[kind], entry)

	if err := s.save(qf); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DrainAll returns the kind's entries in insertion order without
// removing them. Clearing is a separate step so a crash mid-sync never
// loses unconfirmed writes.
func (s *Store) DrainAll(kind Kind) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qf, err := s.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(qf.Queues[kind]))
	copy(entries, qf.Queues[kind])
	return entries, nil
}

// Clear drops every entry of the kind.
func (s *Store) Clear(kind Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	qf, err := s.load()
	if err != nil {
		return err
	}
	delete(qf.Queues, kind)
	return s.save(qf)
}

// Remove drops only the entries with the given local ids, keeping the
// rest in order.
func (s *Store) Remove(kind Kind, localIDs []int64) error {
	if len(localIDs) == 0 {
		return nil
	}

	drop := make(map[int64]bool, len(localIDs))
	for _, id := range localIDs {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qf, err := s.load()
	if err != nil {
		return err
	}

	kept := qf.Queues[kind][:0]
	for _, entry := range qf.Queues[kind] {
		if !drop[entry.LocalID] {
			kept = append(kept, entry)
		}
	}
	qf.Queues[kind] = kept
	return s.save(qf)
}

func (s *Store) load() (*queueFile, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &queueFile{
				NextID: map[Kind]int64{},
				Queues: map[Kind][]Entry{},
			}, nil
		}
		return nil, fmt.Errorf("failed to read queue file: %w", err)
	}

	var qf queueFile
	if err := json.Unmarshal(raw, &qf); err != nil {
		return nil, fmt.Errorf("failed to decode queue file: %w", err)
	}
	if qf.NextID == nil {
		qf.NextID = map[Kind]int64{}
	}
	if qf.Queues == nil {
		qf.Queues = map[Kind][]Entry{}
	}
	return &qf, nil
}

func (s *Store) save(qf *queueFile) error {
	raw, err := json.MarshalIndent(qf, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".queue-*.json")
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
