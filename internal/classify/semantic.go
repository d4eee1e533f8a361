package classify

import (
	"context"
	"io"
	"log"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/embedding"
	"solana-blink-bot/internal/vectorindex"
)

// Semantic is the fallback classifier: a single top-1 nearest-neighbor
// lookup against embedded intent examples. No iteration, no re-ranking.
// Any external failure degrades to undecided.
type Semantic struct {
	provider embedding.Provider
	index    vectorindex.Index
	logger   *log.Logger
}

// NewSemantic creates the semantic fallback classifier.
func NewSemantic(provider embedding.Provider, index vectorindex.Index, logger *log.Logger) *Semantic {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Semantic{provider: provider, index: index, logger: logger}
}

// Classify embeds the query and returns the intent label of the best match.
// ok is false when the index has no match or an external call fails.
func (s *Semantic) Classify(ctx context.Context, query string) (domain.Intent, bool) {
	if s.provider == nil || s.index == nil {
		return "", false
	}

	vector, err := s.provider.Embed(ctx, query)
	if err != nil {
		s.logger.Printf("embed query failed: %v", err)
		return "", false
	}

	matches, err := s.index.Query(ctx, vector, 1)
	if err != nil {
		s.logger.Printf("vector index query failed: %v", err)
		return "", false
	}
	if len(matches) == 0 || matches[0].Label == "" {
		return "", false
	}

	// The label is returned as-is even if it is outside the closed set; the
	// dispatcher reports unknown labels as error records.
	intent, known := domain.ParseIntent(matches[0].Label)
	if !known {
		s.logger.Printf("semantic label %q outside known intents", matches[0].Label)
	}
	return intent, true
}
