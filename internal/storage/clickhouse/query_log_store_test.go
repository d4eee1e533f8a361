package clickhouse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/storage"
)

func testRecord(query, intent string, ts int64) *domain.QueryRecord {
	return &domain.QueryRecord{
		Query:       query,
		Intent:      intent,
		Resolution:  domain.ResolutionRule,
		Resolved:    true,
		DurationMs:  2,
		TimestampMs: ts,
	}
}

func TestQueryLogStore_InsertAndGetRecent(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQueryLogStore(conn)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testRecord("swap 1 sol for usdc", "swap", 1000)))
	require.NoError(t, store.Insert(ctx, testRecord("price of bonk", "price", 2000)))
	require.NoError(t, store.Insert(ctx, testRecord("stake my sol", "stake", 3000)))

	records, err := store.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "stake my sol", records[0].Query)
	require.Equal(t, "price of bonk", records[1].Query)
}

func TestQueryLogStore_InsertBulk(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQueryLogStore(conn)
	ctx := context.Background()

	batch := []*domain.QueryRecord{
		testRecord("swap 1 sol for usdc", "swap", 1000),
		testRecord("swap 2 sol for bonk", "swap", 2000),
		{
			Query:       "teleport me to mars",
			Resolution:  domain.ResolutionNone,
			TimestampMs: 3000,
		},
	}
	require.NoError(t, store.InsertBulk(ctx, batch))

	records, err := store.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, batch[2], records[0])
}

func TestQueryLogStore_InsertInvalid(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQueryLogStore(conn)
	ctx := context.Background()

	require.True(t, errors.Is(store.Insert(ctx, nil), storage.ErrInvalidInput))
	require.True(t, errors.Is(store.Insert(ctx, &domain.QueryRecord{}), storage.ErrInvalidInput))
	require.NoError(t, store.InsertBulk(ctx, nil))

	_, err := store.GetRecent(ctx, 0)
	require.True(t, errors.Is(err, storage.ErrInvalidInput))
}

func TestQueryLogStore_CountByIntent(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewQueryLogStore(conn)
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, []*domain.QueryRecord{
		testRecord("swap 1 sol for usdc", "swap", 1000),
		testRecord("swap 2 sol for bonk", "swap", 2000),
		testRecord("price of bonk", "price", 3000),
	}))

	counts, err := store.CountByIntent(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{"swap": 2, "price": 1}, counts)
}
