// Package tokenapi talks to the external token-registry service used for
// symbol verification and full token-list refreshes.
package tokenapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"solana-blink-bot/internal/observability"
)

// Default configuration values.
const (
	DefaultTimeout = 10 * time.Second

	// DefaultTokenListURL is the canonical Solana token list.
	DefaultTokenListURL = "https://raw.githubusercontent.com/solana-labs/token-list/main/src/tokens/solana.tokenlist.json"
)

// Client implements symbol search against a token-registry HTTP service.
type Client struct {
	endpoint     string
	tokenListURL string
	client       *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithTokenListURL overrides the full token-list download URL.
func WithTokenListURL(u string) ClientOption {
	return func(c *Client) {
		c.tokenListURL = u
	}
}

// NewClient creates a token-registry client. endpoint is the base URL of the
// search service, e.g. https://tokens.example.com.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:     strings.TrimRight(endpoint, "/"),
		tokenListURL: DefaultTokenListURL,
		client:       &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the service's search payload.
type searchResponse struct {
	Tokens []tokenEntry `json:"tokens"`
}

// tokenEntry is a single token-list entry. Only the symbol is relevant here.
type tokenEntry struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Search reports whether an exact case-insensitive symbol match exists among
// known tradable tokens.
func (c *Client) Search(ctx context.Context, symbol string) (bool, error) {
	start := time.Now()
	found, err := c.search(ctx, symbol)
	observability.RecordExternalCall("token_registry", time.Since(start).Seconds(), err)
	return found, err
}

func (c *Client) search(ctx context.Context, symbol string) (bool, error) {
	u := fmt.Sprintf("%s/search?query=%s", c.endpoint, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("search %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("search %s: unexpected status %d", symbol, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read search response: %w", err)
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, fmt.Errorf("decode search response: %w", err)
	}

	for _, entry := range payload.Tokens {
		if strings.EqualFold(entry.Symbol, symbol) {
			return true, nil
		}
	}
	return false, nil
}

// FetchAll downloads the full token list and returns the sorted set of
// unique uppercase symbols. Used by the cache refresh tool, not by the
// classification path.
func (c *Client) FetchAll(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tokenListURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build token list request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch token list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch token list: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode token list: %w", err)
	}

	seen := make(map[string]struct{}, len(payload.Tokens))
	for _, entry := range payload.Tokens {
		symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
		if symbol != "" {
			seen[symbol] = struct{}{}
		}
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
