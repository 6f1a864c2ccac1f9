package domain

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by SnapshotStore.Load when nothing has been saved.
var ErrNoSnapshot = errors.New("no snapshot saved")

//go:generate mockgen -source=persistence.go -destination=../../internal/core/mocks/snapshot_store_mock.go -package=mocks

// SnapshotStore is the minimal abstraction over durable backends. A store
// saves and loads the whole persisted document; it never sees the in-memory
// aggregate.
type SnapshotStore interface {
	// Load returns the last saved document, or an error matching
	// ErrNoSnapshot when nothing has been saved yet.
	Load(ctx context.Context) (Document, error)
	// Save replaces the stored document.
	Save(ctx context.Context, doc Document) error
}
