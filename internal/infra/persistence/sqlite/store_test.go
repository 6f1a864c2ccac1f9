package sqlite

import (
	"context"
	"foodwhere/pkg/domain"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "empty.db"))
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestSaveSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "foodwhere.db")
	rating := 3
	doc := domain.Document{Stalls: []domain.StallRecord{{
		Name:    "Char Char Kuey Tiao",
		Address: "Blk 30 Lorong 3 Serangoon Gardens, #07-18",
		Details: []string{"charkwaytiao"},
		Reviews: []domain.ReviewRecord{{Date: "1/1/2020", Content: "Smoky", Rating: &rating}},
	}}}

	first := openStore(t, path)
	require.NoError(t, first.Save(ctx, domain.Document{}))
	require.NoError(t, first.Save(ctx, doc))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	assert.Equal(t, path, second.Path())
	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	var rows int
	require.NoError(t, second.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM state`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSaveCancelledContext(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "c.db"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, store.Save(ctx, domain.Document{}))
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSnapshot)
}
