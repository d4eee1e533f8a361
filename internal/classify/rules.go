// Package classify resolves a raw query to an intent: a deterministic rule
// cascade first, then a semantic nearest-neighbor fallback.
package classify

import (
	"regexp"
	"strings"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/extract"
)

var pricePhrasePattern = regexp.MustCompile(`\b(price of|what is the price of)\b`)

// staticKeywords are checked, in order, as substrings of the lowercased
// query. Any hit classifies the query as static; the dispatcher decides the
// concrete destination.
var staticKeywords = []string{
	"keystone",
	"deposit",
	"lock bonk",
}

// Rules is the deterministic rule cascade. The check order is part of the
// contract: a domain pattern wins over buy/swap wording, and "lock"+"bonk"
// is a stake alias even without the word "stake".
type Rules struct{}

// NewRules creates the rule cascade.
func NewRules() *Rules {
	return &Rules{}
}

// Classify runs the cascade top to bottom and returns the first match. The
// rule name is returned for observability; ok is false when no rule fired.
func (r *Rules) Classify(query string) (intent domain.Intent, rule string, ok bool) {
	lower := strings.ToLower(query)

	if _, found := extract.Domain(query); found {
		return domain.IntentDomain, "domain", true
	}

	if strings.Contains(lower, "stake") {
		return domain.IntentStake, "stake_keyword", true
	}

	if strings.Contains(lower, "lock") && strings.Contains(lower, "bonk") {
		return domain.IntentStake, "lock_bonk", true
	}

	for _, keyword := range staticKeywords {
		if strings.Contains(lower, keyword) {
			return domain.IntentStatic, "static_keyword", true
		}
	}

	if pricePhrasePattern.MatchString(lower) {
		return domain.IntentPrice, "price_phrase", true
	}

	return "", "", false
}
