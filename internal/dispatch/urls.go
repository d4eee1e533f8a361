package dispatch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fixed deep links to external execution surfaces.
const (
	// BonkLockURL is the BONK lock blink.
	BonkLockURL = "https://dial.to/?action=solana-action%3Ahttps%3A%2F%2Fbonkblinks.com%2Fapi%2Factions%2Flock%3F_brf%3Da0898550-e7ec-408d-b721-fca000769498%26_bin%3Dffafbecd-bb86-435a-8722-e45bf139eab5"

	// Game blinks.
	CoinFlipURL          = "https://dial.to/?action=solana-action%3Ahttps%3A%2F%2Fflip.sendarcade.fun%2Fapi%2Factions%2Fflip%3F_brf%3D9867785e-044d-4158-9b07-80a00db05052%26_bin%3D9f415adc-978d-4bfd-a5b8-66b0ca13f37e"
	RockPaperScissorsURL = "https://dial.to/?action=solana-action%3Ahttps%3A%2F%2Frps.sendarcade.fun%2Fapi%2Factions%2Frps%3F_brf%3D5056cb65-8e5f-4812-bbfb-c887f555e91f%26_bin%3D9d908db2-5996-4c4c-9650-37530601e8e0"
	SnakeLaddersURL      = "https://dial.to/?action=solana-action%3Ahttps%3A%2F%2Fsnakes.sendarcade.fun%2Fapi%2Factions%2Fgame%3F_brf%3Df722eb4a-297a-447b-aa1f-62f870b789fe%26_bin%3Dab63b0bf-abbd-4354-bb55-855309118e6a"

	// Static destinations.
	KeystoneURL    = "https://keyst.one/"
	LuloDepositURL = "https://lulo.fi/deposit"

	// GenericPriceURL is used when a price query names no resolvable token.
	GenericPriceURL = "https://www.coingecko.com/en"
)

// swapURL builds a Jupiter swap link, with the amount appended when present.
// A zero amount is treated as absent.
func swapURL(from, to string, amount *float64) string {
	url := fmt.Sprintf("https://jup.ag/swap/%s-%s", from, to)
	if amount != nil && *amount != 0 {
		url += "?amount=" + formatAmount(*amount)
	}
	return url
}

// buyURL routes a buy through a USDC swap.
func buyURL(token string) string {
	return fmt.Sprintf("https://jup.ag/swap/USDC-%s", token)
}

// accountURL builds a Solscan account link, with an optional token filter.
func accountURL(wallet, token string) string {
	url := fmt.Sprintf("https://solscan.io/account/%s", wallet)
	if token != "" {
		url += "?token=" + token
	}
	return url
}

// domainURL builds a Solscan domain link.
func domainURL(name string) string {
	return fmt.Sprintf("https://solscan.io/domain/%s", name)
}

// priceURL builds a CoinGecko link from the lowercased symbol.
func priceURL(token string) string {
	return fmt.Sprintf("https://www.coingecko.com/en/coins/%s", strings.ToLower(token))
}

// stakeURL builds a Marinade staking link from the lowercased symbol.
func stakeURL(token string) string {
	return fmt.Sprintf("https://www.marinade.finance/stake/%s", strings.ToLower(token))
}

// formatAmount renders an amount the way the action surfaces expect:
// integral values keep one decimal place (10 -> "10.0"), fractional values
// are rendered minimally (10.5 -> "10.5").
func formatAmount(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
