// Package memstore is an in-memory dictstore.Store with no external
// dependency, usable as a test double for a persisted entity dictionary.
package memstore

import (
	"context"
	"sync"

	"github.com/nemex-go/nemex/pkg/nemex/dictstore"
)

// Store is a sync.RWMutex-guarded in-memory dictstore.Store.
type Store struct {
	mu      sync.RWMutex
	entries []dictstore.Entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements dictstore.Store.
func (s *Store) Close() error { return nil }

// SaveEntries replaces the store's contents with entries.
func (s *Store) SaveEntries(ctx context.Context, entries []dictstore.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]dictstore.Entry, len(entries))
	copy(s.entries, entries)
	return nil
}

// LoadEntries returns a copy of the store's contents.
func (s *Store) LoadEntries(ctx context.Context) ([]dictstore.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]dictstore.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
