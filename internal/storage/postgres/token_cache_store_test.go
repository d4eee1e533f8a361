package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"solana-blink-bot/internal/storage"
)

func TestTokenCacheStore_LoadEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTokenCacheStore(pool)

	_, err := store.Load(context.Background())
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestTokenCacheStore_SaveAndLoad(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTokenCacheStore(pool)
	ctx := context.Background()

	err := store.Save(ctx, []string{"BONK", "SOL", "USDC"})
	require.NoError(t, err)

	symbols, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"BONK", "SOL", "USDC"}, symbols)
}

func TestTokenCacheStore_SaveRewritesFullSet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTokenCacheStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"SOL", "USDC"}))
	require.NoError(t, store.Save(ctx, []string{"BONK", "SOL", "USDC", "WIF"}))

	symbols, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"BONK", "SOL", "USDC", "WIF"}, symbols)

	// A shrink is honored too: the old set does not leak through.
	require.NoError(t, store.Save(ctx, []string{"SOL"}))

	symbols, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"SOL"}, symbols)
}

func TestTokenCacheStore_SaveNilInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTokenCacheStore(pool)

	err := store.Save(context.Background(), nil)
	require.True(t, errors.Is(err, storage.ErrInvalidInput))
}

func TestTokenCacheStore_LoadSorted(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTokenCacheStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []string{"WIF", "BONK", "SOL"}))

	symbols, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"BONK", "SOL", "WIF"}, symbols)
}
