// Package memory provides an in-process vector index with exact
// cosine-similarity search. Useful for tests and fully local deployments.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/vectorindex"
)

// Index is an in-memory implementation of vectorindex.Index.
type Index struct {
	mu    sync.RWMutex
	items map[string]vectorindex.Item
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{items: make(map[string]vectorindex.Item)}
}

// Compile-time interface check.
var _ vectorindex.Index = (*Index)(nil)

// Upsert inserts or replaces items by ID.
func (i *Index) Upsert(_ context.Context, items []vectorindex.Item) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for _, item := range items {
		vec := make([]float32, len(item.Vector))
		copy(vec, item.Vector)
		item.Vector = vec
		i.items[item.ID] = item
	}
	return nil
}

// Len returns the number of indexed items.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}

// Query returns up to topK items by cosine similarity, best first.
func (i *Index) Query(_ context.Context, vector []float32, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		topK = 1
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	matches := make([]domain.Match, 0, len(i.items))
	for id, item := range i.items {
		score, ok := cosine(vector, item.Vector)
		if !ok {
			continue
		}
		matches = append(matches, domain.Match{ID: id, Label: item.Label, Score: score})
	}

	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].ID < matches[b].ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// cosine computes cosine similarity. Returns false for mismatched dimensions
// or zero-norm vectors.
func cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
		normA += float64(a[n]) * float64(a[n])
		normB += float64(b[n]) * float64(b[n])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
