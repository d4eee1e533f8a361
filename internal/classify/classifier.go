package classify

import (
	"context"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/observability"
)

// Classifier combines the rule cascade with the semantic fallback.
type Classifier struct {
	rules    *Rules
	semantic *Semantic
}

// NewClassifier creates a Classifier. semantic may be nil, in which case
// queries the cascade cannot decide stay undecided.
func NewClassifier(rules *Rules, semantic *Semantic) *Classifier {
	if rules == nil {
		rules = NewRules()
	}
	return &Classifier{rules: rules, semantic: semantic}
}

// Classify resolves the intent for a query. The resolution reports which
// stage decided; ok is false when both stages are inconclusive.
func (c *Classifier) Classify(ctx context.Context, query string) (domain.Intent, domain.Resolution, bool) {
	if intent, rule, ok := c.rules.Classify(query); ok {
		observability.RecordRuleHit(rule)
		return intent, domain.ResolutionRule, true
	}

	if c.semantic != nil {
		observability.RecordSemanticFallback()
		if intent, ok := c.semantic.Classify(ctx, query); ok {
			return intent, domain.ResolutionSemantic, true
		}
	}

	observability.RecordUndecided()
	return "", domain.ResolutionNone, false
}
