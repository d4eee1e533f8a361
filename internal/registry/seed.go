package registry

// seedSymbols is the built-in token set used when no persisted cache exists
// or the persisted data cannot be read.
var seedSymbols = []string{
	"USDT", "SOL", "USDC", "USDS", "USDE", "CBBTC", "TRUMP", "REND", "JUP",
	"BNSOL", "LINK", "GRT", "W", "PYTH", "HNT", "MSOL", "BONK", "RAY", "JTO",
	"WIF", "ETH", "BTC",
}

// synonyms maps full token names to their canonical trading symbol.
var synonyms = map[string]string{
	"ETHER":    "ETH",
	"ETHEREUM": "ETH",
	"BITCOIN":  "BTC",
	"SOLANA":   "SOL",
}

// SeedSymbols returns a copy of the built-in seed set.
func SeedSymbols() []string {
	out := make([]string, len(seedSymbols))
	copy(out, seedSymbols)
	return out
}
