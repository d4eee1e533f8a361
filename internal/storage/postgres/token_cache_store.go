package postgres

import (
	"context"
	"fmt"

	"solana-blink-bot/internal/storage"
)

// TokenCacheStore implements storage.TokenCacheStore on a token_cache table.
// The table mirrors the blob contract: Save replaces the full symbol set.
type TokenCacheStore struct {
	pool *Pool
}

// NewTokenCacheStore creates a new TokenCacheStore.
func NewTokenCacheStore(pool *Pool) *TokenCacheStore {
	return &TokenCacheStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenCacheStore = (*TokenCacheStore)(nil)

// Load reads all cached symbols, sorted. Returns ErrNotFound when the cache
// has never been written.
func (s *TokenCacheStore) Load(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT symbol FROM token_cache ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("load token cache: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("scan token cache row: %w", err)
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token cache rows: %w", err)
	}

	if len(symbols) == 0 {
		return nil, storage.ErrNotFound
	}
	return symbols, nil
}

// Save rewrites the full symbol set in one transaction.
func (s *TokenCacheStore) Save(ctx context.Context, symbols []string) error {
	if symbols == nil {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin token cache rewrite: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM token_cache`); err != nil {
		return fmt.Errorf("clear token cache: %w", err)
	}
	for _, symbol := range symbols {
		if _, err := tx.Exec(ctx,
			`INSERT INTO token_cache (symbol) VALUES ($1) ON CONFLICT (symbol) DO NOTHING`,
			symbol,
		); err != nil {
			return fmt.Errorf("insert token %s: %w", symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit token cache rewrite: %w", err)
	}
	return nil
}
