// Package vectorindex provides access to the semantic nearest-neighbor index
// holding embedded intent examples.
package vectorindex

import (
	"context"

	"solana-blink-bot/internal/domain"
)

// Item is one indexed example: its vector plus the intent label carried as
// metadata.
type Item struct {
	ID     string
	Vector []float32
	Label  string
}

// Index is the nearest-neighbor index. Query is the only operation used on
// the classification path; Upsert is used by the offline indexer.
type Index interface {
	// Query returns up to topK nearest matches, best first. An empty slice
	// means no match, not an error.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error)

	// Upsert inserts or replaces items by ID.
	Upsert(ctx context.Context, items []Item) error
}
