package memory

import (
	"bytes"
	"context"
	"foodwhere/internal/blob/core"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreBasics(t *testing.T) {
	ctx := context.Background()
	store := New()
	assert.Equal(t, core.DriverMemory, store.Driver())

	meta := map[string]string{"m": "1"}
	obj, err := store.Put(ctx, "k1", bytes.NewReader([]byte("data")), core.PutOptions{ContentType: "text/plain", Metadata: meta})
	require.NoError(t, err)
	assert.Equal(t, int64(4), obj.Size)
	meta["m"] = "changed"

	_, err = store.Put(ctx, "k1", bytes.NewReader([]byte("x")), core.PutOptions{})
	require.ErrorIs(t, err, core.ErrExists)

	head, err := store.Head(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "1", head.Metadata["m"])

	_, rc, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	listed, err := store.List(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	listed, err = store.List(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, listed)

	removed, err := store.Delete(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Delete(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, removed)

	_, _, err = store.Get(ctx, "k1")
	require.ErrorIs(t, err, core.ErrNotFound)
}
