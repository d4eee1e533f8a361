package storage

import (
	"context"

	"solana-blink-bot/internal/domain"
)

// TokenCacheStore persists the set of verified token symbols.
type TokenCacheStore interface {
	// Load reads the full persisted symbol list. Returns ErrNotFound if the
	// cache has never been written, and a wrapped parse error if the
	// persisted data is malformed; callers degrade to the built-in seed set
	// in both cases.
	Load(ctx context.Context) ([]string, error)

	// Save rewrites the full symbol list. Symbols are expected uppercase
	// and sorted for deterministic output.
	Save(ctx context.Context, symbols []string) error
}

// QueryLogStore records processed queries for offline analysis.
type QueryLogStore interface {
	// Insert appends one query record.
	Insert(ctx context.Context, rec *domain.QueryRecord) error

	// GetRecent retrieves up to limit records, newest first.
	GetRecent(ctx context.Context, limit int) ([]*domain.QueryRecord, error)
}
