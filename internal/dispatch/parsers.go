package dispatch

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/extract"
	"solana-blink-bot/internal/registry"
)

// swapPhrasePattern is the strict "swap [amount] X to/for Y" form.
var swapPhrasePattern = regexp.MustCompile(`(?i)swap\s*(\d+(\.\d+)?)?\s*([a-zA-Z]+)\s*(to|for)\s*([a-zA-Z]+)`)

// parseSwap tries the strict phrase form first, then falls back to the first
// two valid tokens found anywhere in the text.
func (d *Dispatcher) parseSwap(ctx context.Context, text string) *domain.ActionResult {
	var amount *float64
	if v, ok := extract.Amount(text); ok {
		amount = domain.Float(v)
	}

	if m := swapPhrasePattern.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				amount = domain.Float(v)
			}
		}
		from := registry.Normalize(m[3])
		to := registry.Normalize(m[5])
		if d.registry.IsValid(ctx, from, true) && d.registry.IsValid(ctx, to, true) {
			return &domain.ActionResult{
				Action:    "swap",
				Amount:    amount,
				FromToken: from,
				ToToken:   to,
				URL:       swapURL(from, to, amount),
			}
		}
	}

	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) < 2 {
		return nil
	}
	from, to := tokens[0], tokens[1]
	return &domain.ActionResult{
		Action:    "swap",
		Amount:    amount,
		FromToken: from,
		ToToken:   to,
		URL:       swapURL(from, to, amount),
	}
}

// parseBalance requires a wallet and a token. A token adjacent to the word
// "balance" is preferred over the first extracted one.
func (d *Dispatcher) parseBalance(ctx context.Context, text string) *domain.ActionResult {
	wallet, ok := extract.WalletAddress(text)
	if !ok {
		return nil
	}

	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) == 0 {
		return nil
	}
	token := tokenNear(text, "BALANCE", tokens)

	return &domain.ActionResult{
		Action: "balance",
		Wallet: wallet,
		Token:  token,
		URL:    accountURL(wallet, token),
	}
}

// parsePrice always produces a result: with no resolvable token the link
// degrades to the generic price page.
func (d *Dispatcher) parsePrice(ctx context.Context, text string) *domain.ActionResult {
	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) == 0 {
		return &domain.ActionResult{
			Action: "price",
			Token:  "UNKNOWN",
			URL:    GenericPriceURL,
		}
	}

	token := tokens[0]
	return &domain.ActionResult{
		Action: "price",
		Token:  token,
		URL:    priceURL(token),
	}
}

func (d *Dispatcher) parseDomain(text string) *domain.ActionResult {
	name, ok := extract.Domain(text)
	if !ok {
		return nil
	}
	return &domain.ActionResult{
		Action: "domain",
		Domain: name,
		URL:    domainURL(name),
	}
}

// parseTransfer requires wallet, amount and token. The token immediately
// before "to <address>" is preferred over the first extracted one.
func (d *Dispatcher) parseTransfer(ctx context.Context, text string) *domain.ActionResult {
	wallet, ok := extract.WalletAddress(text)
	if !ok {
		return nil
	}
	amount, ok := extract.Amount(text)
	if !ok {
		return nil
	}
	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) == 0 {
		return nil
	}
	token := tokenBeforeRecipient(text, wallet, tokens)

	return &domain.ActionResult{
		Action: "transfer",
		Wallet: wallet,
		Token:  token,
		Amount: domain.Float(amount),
		URL:    accountURL(wallet, ""),
	}
}

// parseBuy routes domain purchases to the domain surface; a domain match
// wins over any token in the text.
func (d *Dispatcher) parseBuy(ctx context.Context, text string) *domain.ActionResult {
	if result := d.parseDomain(text); result != nil {
		return result
	}

	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) == 0 {
		return nil
	}
	token := tokens[0]
	return &domain.ActionResult{
		Action: "buy",
		Token:  token,
		URL:    buyURL(token),
	}
}

// parseStake requires a token. BONK routes to its fixed lock blink; other
// tokens route to the generic staking site.
func (d *Dispatcher) parseStake(ctx context.Context, text string) *domain.ActionResult {
	tokens := extract.Tokens(ctx, d.registry, text)
	if len(tokens) == 0 {
		return nil
	}

	token := tokens[0]
	if token == "BONK" {
		return &domain.ActionResult{Action: "stake", Token: "BONK", URL: BonkLockURL}
	}
	return &domain.ActionResult{
		Action: "stake",
		Token:  token,
		URL:    stakeURL(token),
	}
}

// parseDonation requires a wallet; any tokens are informational.
func (d *Dispatcher) parseDonation(ctx context.Context, text string) *domain.ActionResult {
	wallet, ok := extract.WalletAddress(text)
	if !ok {
		return nil
	}
	return &domain.ActionResult{
		Action: "donation",
		Wallet: wallet,
		Tokens: extract.Tokens(ctx, d.registry, text),
		URL:    accountURL(wallet, ""),
	}
}

// gameTable maps keyword pairs to fixed game blinks.
var gameTable = []struct {
	first, second string
	game          string
	url           string
}{
	{"COIN", "FLIP", "coin_flip", CoinFlipURL},
	{"ROCK", "PAPER", "rock_paper_scissors", RockPaperScissorsURL},
	{"SNAKE", "LADDERS", "snake_ladders", SnakeLaddersURL},
}

func (d *Dispatcher) parseGame(text string) *domain.ActionResult {
	upper := strings.ToUpper(text)
	for _, entry := range gameTable {
		if strings.Contains(upper, entry.first) && strings.Contains(upper, entry.second) {
			return &domain.ActionResult{
				Action: "game",
				Game:   entry.game,
				URL:    entry.url,
			}
		}
	}
	return nil
}

// parseStatic resolves fixed destinations. Stake wording (including the
// lock+bonk alias) is routed back into the stake parser.
func (d *Dispatcher) parseStatic(ctx context.Context, text string) *domain.ActionResult {
	upper := strings.ToUpper(text)

	if strings.Contains(upper, "STAKE") ||
		(strings.Contains(upper, "LOCK") && strings.Contains(upper, "BONK")) {
		return d.parseStake(ctx, text)
	}
	if strings.Contains(upper, "KEYSTONE") && strings.Contains(upper, "WALLET") {
		return &domain.ActionResult{Action: "static", Type: "wallet", URL: KeystoneURL}
	}
	if strings.Contains(upper, "LULO") &&
		(strings.Contains(upper, "DEPOSIT") || strings.Contains(upper, "EARN")) {
		return &domain.ActionResult{Action: "static", Type: "deposit", URL: LuloDepositURL}
	}
	return nil
}

// tokenNear prefers the token that appears directly next to keyword in the
// text, falling back to the first extracted token.
func tokenNear(text, keyword string, tokens []string) string {
	words := extract.Words(text)

	keywordPos := -1
	for i, w := range words {
		if w == keyword {
			keywordPos = i
			break
		}
	}
	if keywordPos >= 0 {
		for _, token := range tokens {
			for i, w := range words {
				if registry.Normalize(w) != token {
					continue
				}
				if i == keywordPos-1 || i == keywordPos+1 {
					return token
				}
			}
		}
	}
	return tokens[0]
}

// tokenBeforeRecipient prefers the token in a "<token> to <address>" phrase,
// falling back to the first extracted token.
func tokenBeforeRecipient(text, wallet string, tokens []string) string {
	words := extract.Words(text)
	walletWord := strings.ToUpper(wallet)

	for i, w := range words {
		if w != walletWord || i < 2 || words[i-1] != "TO" {
			continue
		}
		candidate := registry.Normalize(words[i-2])
		for _, token := range tokens {
			if token == candidate {
				return token
			}
		}
	}
	return tokens[0]
}
