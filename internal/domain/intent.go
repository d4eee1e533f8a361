// Package domain contains the core types shared across classification,
// extraction and dispatch.
package domain

// Intent is the action category a query is mapped to.
type Intent string

// The closed set of supported intents.
const (
	IntentSwap     Intent = "swap"
	IntentBalance  Intent = "balance"
	IntentPrice    Intent = "price"
	IntentDomain   Intent = "domain"
	IntentTransfer Intent = "transfer"
	IntentBuy      Intent = "buy"
	IntentStake    Intent = "stake"
	IntentDonation Intent = "donation"
	IntentGame     Intent = "game"
	IntentStatic   Intent = "static"
)

// AllIntents lists every supported intent, in declaration order.
var AllIntents = []Intent{
	IntentSwap,
	IntentBalance,
	IntentPrice,
	IntentDomain,
	IntentTransfer,
	IntentBuy,
	IntentStake,
	IntentDonation,
	IntentGame,
	IntentStatic,
}

// ParseIntent maps a label to a known Intent. Returns false for labels
// outside the closed set; such labels still reach the dispatcher, which
// reports them as an error record rather than failing.
func ParseIntent(label string) (Intent, bool) {
	for _, intent := range AllIntents {
		if string(intent) == label {
			return intent, true
		}
	}
	return Intent(label), false
}

// String returns the intent label.
func (i Intent) String() string {
	return string(i)
}
