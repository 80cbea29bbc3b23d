package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory. It is meant for tests
// and for running without durable storage while keeping the same code path.
type MemoryStore struct {
	mu    sync.Mutex
	snap  *Snapshot
	saves int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil, ErrNotFound
	}
	return cloneSnapshot(s.snap), nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = cloneSnapshot(snap)
	s.saves++
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneSnapshot(snap *Snapshot) *Snapshot {
	out := *snap
	if snap.Entries != nil {
		out.Entries = make([]SnapshotEntry, len(snap.Entries))
		copy(out.Entries, snap.Entries)
	}
	return &out
}

var _ Store = (*MemoryStore)(nil)
