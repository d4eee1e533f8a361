// Package extract provides stateless pattern-matchers that pull candidate
// tokens, wallet addresses, domain names and amounts out of raw query text.
// Absence of a match is reported as a missing value, never an error.
package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"solana-blink-bot/internal/registry"
)

var (
	wordPattern    = regexp.MustCompile(`[A-Za-z0-9]+`)
	walletPattern  = regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{32,44}\b`)
	domainPattern  = regexp.MustCompile(`(?i)\b[\w\d-]+\.(sol|eth|degen|monad|letsbonk)\b`)
	amountPattern  = regexp.MustCompile(`\d+(\.\d+)?`)
	lettersPattern = regexp.MustCompile(`^[A-Za-z]+$`)
)

// stopwords are filler words dropped before token matching.
var stopwords = map[string]struct{}{
	"CAN": {}, "YOU": {}, "SWAP": {}, "SOME": {}, "TO": {}, "FOR": {},
	"A": {}, "THE": {}, "ME": {}, "PLEASE": {}, "ON": {},
}

// Words splits text into uppercase alphanumeric runs, in order.
func Words(text string) []string {
	raw := wordPattern.FindAllString(text, -1)
	words := make([]string, len(raw))
	for i, w := range raw {
		words[i] = strings.ToUpper(w)
	}
	return words
}

// IsPotentialToken reports whether a word has the shape of a token symbol:
// a short alphabetic code or a base58 mint address.
func IsPotentialToken(word string) bool {
	if len(word) >= 1 && len(word) <= 6 && lettersPattern.MatchString(word) {
		return true
	}
	return IsMintAddress(word)
}

// IsMintAddress reports whether a word is a base58 string of 32-44 characters
// that decodes to a 32-byte public key.
func IsMintAddress(word string) bool {
	if len(word) < 32 || len(word) > 44 {
		return false
	}
	decoded, err := base58.Decode(word)
	return err == nil && len(decoded) == 32
}

// Tokens extracts valid token symbols from text, in first-seen order without
// duplicates. Candidate words are validated against the registry in two
// passes: first cache-only, then with external fallback for words still
// unresolved, so filler-like words never trigger a network call.
func Tokens(ctx context.Context, reg *registry.Registry, text string) []string {
	var tokens []string
	seen := make(map[string]struct{})

	for _, word := range Words(text) {
		if _, stop := stopwords[word]; stop {
			continue
		}

		// Synonyms resolve before the shape gate: "BITCOIN" is seven
		// letters but its canonical form "BTC" is a valid candidate.
		canonical := registry.Normalize(word)
		if !IsPotentialToken(canonical) {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}

		if !reg.IsValid(ctx, canonical, false) && !reg.IsValid(ctx, canonical, true) {
			continue
		}

		seen[canonical] = struct{}{}
		tokens = append(tokens, canonical)
	}
	return tokens
}

// WalletAddress returns the leftmost base58 run of 32-44 characters. The
// address is not validated beyond its shape.
func WalletAddress(text string) (string, bool) {
	match := walletPattern.FindString(text)
	return match, match != ""
}

// Domain returns the first name.tld match for the supported TLDs.
func Domain(text string) (string, bool) {
	match := domainPattern.FindString(text)
	return match, match != ""
}

// Amount returns the first numeric literal in the text. A bare number is
// taken as-is: "lock for 12 months" yields 12 even though it is a duration.
func Amount(text string) (float64, bool) {
	match := amountPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
