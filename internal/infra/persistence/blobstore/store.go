// Package blobstore keeps versioned address book snapshots in an object
// store. Every save writes a new object; load reads the newest one.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"foodwhere/internal/blob/core"
	"foodwhere/internal/infra/persistence"
	"foodwhere/pkg/domain"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPrefix is used when New receives an empty prefix.
const DefaultPrefix = "snapshots"

var _ domain.SnapshotStore = (*Store)(nil)

// Store writes snapshots under "<prefix>/<unixnano>-<uuid>.json". The
// timestamp is zero padded so key order is save order.
type Store struct {
	bucket core.Store
	prefix string
	now    func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the timestamp source used for keys.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps bucket.
func New(bucket core.Store, prefix string, opts ...Option) *Store {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	s := &Store{bucket: bucket, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the newest snapshot.
func (s *Store) Load(ctx context.Context) (domain.Document, error) {
	versions, err := s.Versions(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if len(versions) == 0 {
		return domain.Document{}, fmt.Errorf("blob %s: %w", s.prefix, domain.ErrNoSnapshot)
	}
	return s.LoadVersion(ctx, versions[len(versions)-1].Key)
}

// LoadVersion decodes the snapshot stored at key.
func (s *Store) LoadVersion(ctx context.Context, key string) (domain.Document, error) {
	_, rc, err := s.bucket.Get(ctx, key)
	if err != nil {
		return domain.Document{}, fmt.Errorf("get snapshot: %w", err)
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return persistence.Decode(b)
}

// Save writes doc as a new version.
func (s *Store) Save(ctx context.Context, doc domain.Document) error {
	_, err := s.SaveVersion(ctx, doc)
	return err
}

// SaveVersion writes doc and returns the stored object.
func (s *Store) SaveVersion(ctx context.Context, doc domain.Document) (core.Object, error) {
	b, err := persistence.Encode(doc)
	if err != nil {
		return core.Object{}, err
	}
	key := fmt.Sprintf("%s/%020d-%s.json", s.prefix, s.now().UnixNano(), uuid.NewString())
	obj, err := s.bucket.Put(ctx, key, bytes.NewReader(b), core.PutOptions{
		ContentType: persistence.ContentType,
		Metadata:    map[string]string{"stalls": strconv.Itoa(len(doc.Stalls))},
	})
	if err != nil {
		return core.Object{}, fmt.Errorf("put snapshot: %w", err)
	}
	return obj, nil
}

// Versions lists stored snapshots oldest first.
func (s *Store) Versions(ctx context.Context) ([]core.Object, error) {
	objs, err := s.bucket.List(ctx, s.prefix+"/")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := objs[:0]
	for _, obj := range objs {
		if strings.HasSuffix(obj.Key, ".json") {
			out = append(out, obj)
		}
	}
	return out, nil
}

// Prune deletes all but the newest keep snapshots and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("prune must keep at least one snapshot, got %d", keep)
	}
	versions, err := s.Versions(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := 0; i < len(versions)-keep; i++ {
		ok, err := s.bucket.Delete(ctx, versions[i].Key)
		if err != nil {
			return removed, fmt.Errorf("delete snapshot: %w", err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}
