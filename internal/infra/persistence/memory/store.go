// Package memory provides a process-local snapshot store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"foodwhere/pkg/domain"
	"sync"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps a private copy of the last saved document.
type Store struct {
	mu    sync.RWMutex
	doc   domain.Document
	saved bool
	saves int
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// NewStoreWith returns a store preloaded with doc.
func NewStoreWith(doc domain.Document) *Store {
	return &Store{doc: doc.Clone(), saved: true}
}

// Load returns a copy of the saved document.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return domain.Document{}, fmt.Errorf("memory store: %w", domain.ErrNoSnapshot)
	}
	return s.doc.Clone(), nil
}

// Save replaces the held document with a copy of doc.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.saved = true
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
