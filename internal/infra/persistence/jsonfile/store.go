// Package jsonfile stores the address book as a single JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"foodwhere/internal/infra/persistence"
	"foodwhere/pkg/domain"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is used when NewStore receives an empty path.
const DefaultPath = "data/foodwhere.json"

var _ domain.SnapshotStore = (*Store)(nil)

// Store reads and writes one JSON document. Writes go to a temp file in the
// same directory which is then renamed over the target.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store for path. The file need not exist yet.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

// Load reads and parses the file.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Document{}, fmt.Errorf("%s: %w", s.path, domain.ErrNoSnapshot)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return persistence.Decode(b)
}

// Save writes doc atomically, creating parent directories as needed.
func (s *Store) Save(ctx context.Context, doc domain.Document) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := persistence.Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".foodwhere-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
