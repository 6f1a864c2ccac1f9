// Package postgres persists address book snapshots in a PostgreSQL state
// table.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"foodwhere/internal/infra/persistence"
	"foodwhere/pkg/domain"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Bucket is the state row holding the stall list.
const Bucket = "stalls"

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/foodwhere?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps the encoded document as JSONB in state(bucket, payload).
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore connects with dsn (defaultDSN when empty), pings the server and
// ensures the state table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureStateTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureStateTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure state table: %w", err)
	}
	return nil
}

// Load reads the stalls bucket.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, Bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, fmt.Errorf("postgres: %w", domain.ErrNoSnapshot)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("select state: %w", err)
	}
	return persistence.Decode(payload)
}

// Save upserts the stalls bucket inside a transaction.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
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
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`, Bucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", Bucket, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
