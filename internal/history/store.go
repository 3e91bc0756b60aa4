// Package history keeps the ordered list of past analyses plus a cache
// of the full records seen this session, with an optional JSON snapshot
// on disk.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/raphaelgruber/cvlens/internal/models"
)

// Store holds history entries, newest-recorded-first. It is safe for
// concurrent use, though the view layer only ever mutates it from the
// event loop.
type Store struct {
	mu      sync.RWMutex
	entries []models.HistoryEntry
	records map[string]models.ResumeRecord

	// path of the snapshot file; empty disables persistence
	path   string
	logger *slog.Logger
}

// New creates a store. When path is non-empty the snapshot there is
// loaded immediately; a missing or corrupt snapshot silently yields an
// empty store.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		records: make(map[string]models.ResumeRecord),
		path:    path,
		logger:  logger,
	}
	s.load()
	return s
}

// All returns the entries, most recently recorded first. The returned
// slice is a copy.
func (s *Store) All() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Record inserts the record's stub at the front and caches the full
// record. Recording an id that is already present is a no-op for
// ordering, but still refreshes the cached record. The snapshot, when
// configured, is rewritten on every call.
func (s *Store) Record(rec models.ResumeRecord) {
	s.mu.Lock()
	if !s.hasEntry(rec.ID) {
		s.entries = append([]models.HistoryEntry{rec.Stub()}, s.entries...)
	}
	s.records[rec.ID] = rec
	s.mu.Unlock()

	s.persist()
}

// Find returns the cached full record for id. Stubs merged from the
// server have no full record until fetched.
func (s *Store) Find(id string) (models.ResumeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// MergeStubs replaces the listing with server-provided stubs while
// keeping every cached full record reachable: a cached record missing
// from the server list stays at its recency position.
func (s *Store) MergeStubs(stubs []models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listed := make(map[string]bool, len(stubs))
	merged := make([]models.HistoryEntry, 0, len(stubs))
	for _, st := range stubs {
		if listed[st.ID] {
			continue
		}
		listed[st.ID] = true
		merged = append(merged, st)
	}
	for _, e := range s.entries {
		if !listed[e.ID] {
			if _, cached := s.records[e.ID]; cached {
				merged = append(merged, e)
			}
		}
	}
	s.entries = merged
}

func (s *Store) hasEntry(id string) bool {
	for _, e := range s.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// load reads the snapshot. Anything wrong with it (missing, corrupt,
// wrong shape) leaves the store empty; startup never fails on history.
func (s *Store) load() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var recs []models.ResumeRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		s.logger.Warn("discarding corrupt history snapshot", "path", s.path, "error", err)
		return
	}
	for _, rec := range recs {
		if rec.ID == "" {
			continue
		}
		if _, dup := s.records[rec.ID]; dup {
			continue
		}
		s.records[rec.ID] = rec
		s.entries = append(s.entries, rec.Stub())
	}
}

// persist writes the full-record snapshot. Failures are logged, never
// surfaced; history persistence is best effort.
func (s *Store) persist() {
	if s.path == "" {
		return
	}

	s.mu.RLock()
	recs := make([]models.ResumeRecord, 0, len(s.entries))
	for _, e := range s.entries {
		if rec, ok := s.records[e.ID]; ok {
			recs = append(recs, rec)
		}
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		s.logger.Warn("marshal history snapshot", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Warn("create history dir", "error", err)
		return
	}
	if err := writeAtomic(s.path, data); err != nil {
		s.logger.Warn("write history snapshot", "path", s.path, "error", err)
	}
}

// writeAtomic writes via a temp file and rename so a crash mid-write
// can't leave a truncated snapshot.
func writeAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp", path)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
