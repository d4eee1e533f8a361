// Package memory provides in-memory storage implementations, primarily for
// tests and the --use-memory server mode.
package memory

import (
	"context"
	"sync"

	"solana-blink-bot/internal/storage"
)

// TokenCacheStore is an in-memory implementation of storage.TokenCacheStore.
type TokenCacheStore struct {
	mu      sync.RWMutex
	symbols []string
	written bool
}

// NewTokenCacheStore creates a new in-memory token cache store.
func NewTokenCacheStore() *TokenCacheStore {
	return &TokenCacheStore{}
}

// Compile-time interface check.
var _ storage.TokenCacheStore = (*TokenCacheStore)(nil)

// Load returns the last saved symbol list, or ErrNotFound before any save.
func (s *TokenCacheStore) Load(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.written {
		return nil, storage.ErrNotFound
	}
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out, nil
}

// Save replaces the stored symbol list.
func (s *TokenCacheStore) Save(_ context.Context, symbols []string) error {
	if symbols == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.symbols = make([]string, len(symbols))
	copy(s.symbols, symbols)
	s.written = true
	return nil
}
