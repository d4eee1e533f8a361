package domain

// ActionResult is the structured outcome of parsing a classified query.
// Field presence depends on the action; URL is set whenever the action is
// resolvable. A nil *ActionResult means the intent was recognized but the
// query did not carry enough information to act on.
type ActionResult struct {
	Action    string   `json:"action,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	FromToken string   `json:"from_token,omitempty"`
	ToToken   string   `json:"to_token,omitempty"`
	Token     string   `json:"token,omitempty"`
	Tokens    []string `json:"tokens,omitempty"`
	Wallet    string   `json:"wallet,omitempty"`
	Domain    string   `json:"domain,omitempty"`
	Game      string   `json:"game,omitempty"`
	Type      string   `json:"type,omitempty"`
	URL       string   `json:"url,omitempty"`

	// Error carries a structured error record, e.g. for an intent label
	// outside the closed set. Mutually exclusive with the other fields.
	Error string `json:"error,omitempty"`
}

// Float is a convenience for building optional amounts.
func Float(v float64) *float64 {
	return &v
}
