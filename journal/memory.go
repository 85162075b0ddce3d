package journal

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries []*Entry
	nextSeq uint64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextSeq: 1}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.Seq = s.nextSeq
	s.nextSeq++

	clone := *e
	s.entries = append(s.entries, &clone)
	return nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, fromSeq uint64) ([]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Entry
	for _, e := range s.entries {
		if e.Seq >= fromSeq {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
