// Package dispatch turns a resolved intent plus the raw query text into a
// structured action record with its deep link.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/registry"
)

// Dispatcher selects the per-intent parser for a resolved intent.
type Dispatcher struct {
	registry *registry.Registry
}

// NewDispatcher creates a Dispatcher backed by the given token registry.
func NewDispatcher(reg *registry.Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// Dispatch runs the parser for the intent. A nil result means the intent was
// recognized but the text did not carry the required entities. Labels outside
// the closed set yield an error record naming the label. Label matching is
// case-insensitive; index metadata may carry mixed case.
func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent, text string) *domain.ActionResult {
	switch domain.Intent(strings.ToLower(string(intent))) {
	case domain.IntentSwap:
		return d.parseSwap(ctx, text)
	case domain.IntentBalance:
		return d.parseBalance(ctx, text)
	case domain.IntentPrice:
		return d.parsePrice(ctx, text)
	case domain.IntentDomain:
		return d.parseDomain(text)
	case domain.IntentTransfer:
		return d.parseTransfer(ctx, text)
	case domain.IntentBuy:
		return d.parseBuy(ctx, text)
	case domain.IntentStake:
		return d.parseStake(ctx, text)
	case domain.IntentDonation:
		return d.parseDonation(ctx, text)
	case domain.IntentGame:
		return d.parseGame(text)
	case domain.IntentStatic:
		return d.parseStatic(ctx, text)
	default:
		return &domain.ActionResult{
			Error: fmt.Sprintf("unknown intent: %s", intent),
		}
	}
}
