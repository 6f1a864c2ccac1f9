// Package memory implements core.Store in process memory for tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"foodwhere/internal/blob/core"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type entry struct {
	obj  core.Object
	data []byte
}

// Store keeps objects in a map guarded by a mutex.
type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
}

// New returns an empty store.
func New() *Store { return &Store{objs: make(map[string]entry)} }

// Driver returns core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Put stores a copy of r's contents under key.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts core.PutOptions) (core.Object, error) {
	if err := ctx.Err(); err != nil {
		return core.Object{}, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return core.Object{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objs[key]; exists {
		return core.Object{}, fmt.Errorf("put %s: %w", key, core.ErrExists)
	}
	obj := core.Object{
		Key:          key,
		Size:         int64(len(b)),
		ContentType:  opts.ContentType,
		Metadata:     core.CloneMetadata(opts.Metadata),
		LastModified: time.Now().UTC(),
	}
	s.objs[key] = entry{obj: obj, data: b}
	return copyObject(obj), nil
}

// Get returns the object and a reader over a copy of its bytes.
func (s *Store) Get(_ context.Context, key string) (core.Object, io.ReadCloser, error) {
	s.mu.RLock()
	e, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return core.Object{}, nil, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	return copyObject(e.obj), io.NopCloser(bytes.NewReader(bytes.Clone(e.data))), nil
}

// Head returns object metadata.
func (s *Store) Head(_ context.Context, key string) (core.Object, error) {
	s.mu.RLock()
	e, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return core.Object{}, fmt.Errorf("%s: %w", key, core.ErrNotFound)
	}
	return copyObject(e.obj), nil
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objs[key]
	delete(s.objs, key)
	return ok, nil
}

// List returns objects under prefix ordered by key.
func (s *Store) List(_ context.Context, prefix string) ([]core.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Object, 0, len(s.objs))
	for k, e := range s.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, copyObject(e.obj))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func copyObject(obj core.Object) core.Object {
	obj.Metadata = core.CloneMetadata(obj.Metadata)
	return obj
}
