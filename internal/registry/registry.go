// Package registry owns the set of token symbols considered valid: synonym
// normalization, membership checks, fallback verification against an external
// lookup service, and write-through persistence of confirmed symbols.
package registry

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"
	"strings"
	"sync"

	"solana-blink-bot/internal/observability"
	"solana-blink-bot/internal/storage"
)

// Verifier checks a symbol against the external token registry service.
type Verifier interface {
	// Search reports whether an exact case-insensitive symbol match exists
	// among known tradable tokens.
	Search(ctx context.Context, symbol string) (bool, error)
}

// Registry holds the in-memory set of valid symbols. The set only grows
// within a process lifetime: every externally verified symbol is added and
// persisted so repeated queries never re-hit the service. Safe for
// concurrent use.
type Registry struct {
	store    storage.TokenCacheStore
	verifier Verifier
	logger   *log.Logger

	mu      sync.RWMutex
	loaded  bool
	symbols map[string]struct{}
}

// Option configures a Registry.
type Option func(*Registry)

// WithVerifier sets the external lookup service used for fallback
// verification. Without one, fallback lookups are treated as not found.
func WithVerifier(v Verifier) Option {
	return func(r *Registry) {
		r.verifier = v
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a Registry backed by the given persistent store. The symbol set
// is loaded lazily on first use.
func New(store storage.TokenCacheStore, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Normalize uppercases a symbol and applies the synonym table.
func Normalize(symbol string) string {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	if canonical, ok := synonyms[upper]; ok {
		return canonical
	}
	return upper
}

// IsValid reports whether the symbol (after synonym normalization) is a known
// valid token. With allowFallback, an unknown symbol is checked against the
// external service; a positive result is added to the set and persisted
// before returning. Lookup failures are treated as not found — an
// unverifiable token is never valid.
func (r *Registry) IsValid(ctx context.Context, symbol string, allowFallback bool) bool {
	canonical := Normalize(symbol)
	if canonical == "" {
		return false
	}

	r.ensureLoaded(ctx)

	r.mu.RLock()
	_, ok := r.symbols[canonical]
	r.mu.RUnlock()
	if ok {
		observability.RecordCacheHit()
		return true
	}
	observability.RecordCacheMiss()

	if !allowFallback || r.verifier == nil {
		return false
	}

	found, err := r.verifier.Search(ctx, canonical)
	if err != nil {
		r.logger.Printf("token lookup %s failed: %v", canonical, err)
		observability.RecordVerification("error")
		return false
	}
	if !found {
		observability.RecordVerification("not_found")
		return false
	}
	observability.RecordVerification("found")

	if err := r.Save(ctx, canonical); err != nil {
		r.logger.Printf("persist token %s failed: %v", canonical, err)
	}
	return true
}

// Save adds a symbol to the set and rewrites the persisted cache. No-op if
// the symbol is already present.
func (r *Registry) Save(ctx context.Context, symbol string) error {
	canonical := Normalize(symbol)
	if canonical == "" {
		return storage.ErrInvalidInput
	}

	r.ensureLoaded(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.symbols[canonical]; exists {
		return nil
	}
	r.symbols[canonical] = struct{}{}

	sorted := make([]string, 0, len(r.symbols))
	for s := range r.symbols {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)

	return r.store.Save(ctx, sorted)
}

// Symbols returns the current symbol set, sorted.
func (r *Registry) Symbols(ctx context.Context) []string {
	r.ensureLoaded(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.symbols))
	for s := range r.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ensureLoaded populates the in-memory set from the persisted cache on first
// use. Missing or malformed cache data degrades to the built-in seed set.
func (r *Registry) ensureLoaded(ctx context.Context) {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return
	}

	symbols, err := r.store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		symbols = SeedSymbols()
	default:
		r.logger.Printf("load token cache failed, using seed set: %v", err)
		symbols = SeedSymbols()
	}

	r.symbols = make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		upper := strings.ToUpper(strings.TrimSpace(s))
		if upper != "" {
			r.symbols[upper] = struct{}{}
		}
	}
	r.loaded = true
}
