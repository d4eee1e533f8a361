package memory

import (
	"context"
	"sync"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/storage"
)

// QueryLogStore is an in-memory implementation of storage.QueryLogStore.
type QueryLogStore struct {
	mu      sync.RWMutex
	records []*domain.QueryRecord
}

// NewQueryLogStore creates a new in-memory query log store.
func NewQueryLogStore() *QueryLogStore {
	return &QueryLogStore{}
}

// Compile-time interface check.
var _ storage.QueryLogStore = (*QueryLogStore)(nil)

// Insert appends one query record.
func (s *QueryLogStore) Insert(_ context.Context, rec *domain.QueryRecord) error {
	if rec == nil || rec.Query == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recCopy := *rec
	s.records = append(s.records, &recCopy)
	return nil
}

// GetRecent retrieves up to limit records, newest first.
func (s *QueryLogStore) GetRecent(_ context.Context, limit int) ([]*domain.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]*domain.QueryRecord, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		recCopy := *s.records[i]
		out = append(out, &recCopy)
	}
	return out, nil
}
