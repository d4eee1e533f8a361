// Package file implements blob-backed storage on the local filesystem.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"solana-blink-bot/internal/storage"
)

// TokenCacheStore persists token symbols as a JSON array in a single file.
// The full array is rewritten on every save.
type TokenCacheStore struct {
	path string
}

// NewTokenCacheStore creates a store backed by the given file path.
func NewTokenCacheStore(path string) *TokenCacheStore {
	return &TokenCacheStore{path: path}
}

// Compile-time interface check.
var _ storage.TokenCacheStore = (*TokenCacheStore)(nil)

// Load reads the persisted symbol list. The canonical format is a flat JSON
// array of strings; for compatibility with older cache files a JSON object is
// also accepted, in which case the first array-valued entry is treated as the
// symbol list. Returns ErrNotFound when the file does not exist.
func (s *TokenCacheStore) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read token cache %s: %w", s.path, err)
	}

	symbols, err := decodeSymbols(data)
	if err != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", s.path, err)
	}
	return symbols, nil
}

// Save rewrites the full symbol list.
func (s *TokenCacheStore) Save(_ context.Context, symbols []string) error {
	if symbols == nil {
		return storage.ErrInvalidInput
	}

	data, err := json.MarshalIndent(symbols, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create token cache dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write token cache %s: %w", s.path, err)
	}
	return nil
}

// decodeSymbols parses either a flat string array or an object whose first
// array-valued entry (in document order) holds the symbols.
func decodeSymbols(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty cache file")
	}

	if trimmed[0] == '[' {
		var symbols []string
		if err := json.Unmarshal(trimmed, &symbols); err != nil {
			return nil, err
		}
		return symbols, nil
	}

	if trimmed[0] != '{' {
		return nil, fmt.Errorf("unexpected leading byte %q", trimmed[0])
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // consume '{'
		return nil, err
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		value := bytes.TrimSpace(raw)
		if len(value) > 0 && value[0] == '[' {
			var symbols []string
			if err := json.Unmarshal(value, &symbols); err != nil {
				return nil, err
			}
			return symbols, nil
		}
	}
	return nil, fmt.Errorf("no symbol list found in cache object")
}
