package blob

import (
	"bytes"
	"context"
	"foodwhere/internal/blob/core"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()

	t.Run("default is filesystem", func(t *testing.T) {
		store, err := Open(ctx, Config{Root: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, core.DriverFilesystem, store.Driver())
	})

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, Config{Driver: core.DriverMemory})
		require.NoError(t, err)
		assert.Equal(t, core.DriverMemory, store.Driver())
		_, err = store.Put(ctx, "snapshots/a.json", bytes.NewReader([]byte("{}")), core.PutOptions{})
		require.NoError(t, err)
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		_, err := Open(ctx, Config{Driver: core.DriverS3})
		require.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, Config{Driver: "tape"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown blob driver")
	})
}
