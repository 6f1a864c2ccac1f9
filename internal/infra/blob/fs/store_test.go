package fs

import (
	"context"
	"foodwhere/internal/blob/core"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := New(root)
	require.NoError(t, err)
	assert.Equal(t, core.DriverFilesystem, store.Driver())
	assert.Equal(t, root, store.Root())

	obj, err := store.Put(ctx, "snapshots/a.json", strings.NewReader("payload"), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"stalls": "4"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), obj.Size)
	assert.NotEmpty(t, obj.ETag)

	_, err = store.Put(ctx, "snapshots/a.json", strings.NewReader("x"), core.PutOptions{})
	require.ErrorIs(t, err, core.ErrExists)

	head, err := store.Head(ctx, "snapshots/a.json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", head.ContentType)
	assert.Equal(t, "4", head.Metadata["stalls"])

	got, rc, err := store.Get(ctx, "snapshots/a.json")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(b))
	assert.Equal(t, obj.ETag, got.ETag)
}

func TestListSortsAndFilters(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"snapshots/b.json", "snapshots/a.json", "other/c.json"} {
		_, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{})
		require.NoError(t, err)
	}
	listed, err := store.List(ctx, "snapshots/")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "snapshots/a.json", listed[0].Key)
	assert.Equal(t, "snapshots/b.json", listed[1].Key)
}

func TestMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Head(ctx, "nope")
	require.ErrorIs(t, err, core.ErrNotFound)
	_, _, err = store.Get(ctx, "nope")
	require.ErrorIs(t, err, core.ErrNotFound)

	_, err = store.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{})
	require.NoError(t, err)
	removed, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = os.Stat(filepath.Join(store.Root(), "k"+metaSuffix))
	assert.True(t, os.IsNotExist(err))
	removed, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	for _, key := range []string{"", "  ", "/abs", "../escape", "a/../../b", "x.meta"} {
		_, err := store.Put(ctx, key, strings.NewReader("v"), core.PutOptions{})
		assert.Error(t, err, "key %q", key)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
