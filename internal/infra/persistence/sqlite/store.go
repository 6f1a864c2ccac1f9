// Package sqlite persists address book snapshots in an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodwhere/internal/infra/persistence"
	"foodwhere/pkg/domain"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Bucket is the state row holding the stall list.
const Bucket = "stalls"

// DefaultPath is used when NewStore receives an empty path.
const DefaultPath = "data/foodwhere.db"

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps the encoded document in a state(bucket, payload) table.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database at path and ensures the state table.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load reads the stalls bucket.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, Bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, fmt.Errorf("sqlite %s: %w", s.path, domain.ErrNoSnapshot)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("select state: %w", err)
	}
	return persistence.Decode(payload)
}

// Save upserts the stalls bucket inside a transaction.
func (s *Store) Save(ctx context.Context, doc domain.Document) (retErr error) {
	data, err := persistence.Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, Bucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", Bucket, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
