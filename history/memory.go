package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	now     func() time.Time
}

// NewMemoryStore creates a Store backed by an in-memory map. Used in tests
// and for storeless development runs.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string][]Entry),
		now:     time.Now,
	}
}

func (s *memoryStore) Insert(_ context.Context, regNo, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[regNo] = append(s.entries[regNo], Entry{Message: message, Timestamp: s.now()})
	return nil
}

func (s *memoryStore) Recent(_ context.Context, regNo string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[regNo]
	entries := make([]Entry, len(stored))
	copy(entries, stored)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *memoryStore) Ping(context.Context) error {
	return nil
}
