// Package embedding provides the client for the external embedding service.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"solana-blink-bot/internal/observability"
)

// DefaultTimeout bounds one embedding round trip.
const DefaultTimeout = 15 * time.Second

// Provider generates an embedding vector for a piece of text. Deterministic
// for identical input within a model version.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HTTPProvider implements Provider against an embedding HTTP service
// (POST {endpoint}/embed with {"text": ...}).
type HTTPProvider struct {
	endpoint string
	model    string
	client   *http.Client
}

// ProviderOption configures HTTPProvider.
type ProviderOption func(*HTTPProvider)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ProviderOption {
	return func(p *HTTPProvider) {
		p.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ProviderOption {
	return func(p *HTTPProvider) {
		p.client = client
	}
}

// WithModel sets the model name sent with each request.
func WithModel(model string) ProviderOption {
	return func(p *HTTPProvider) {
		p.model = model
	}
}

// NewHTTPProvider creates an embedding client for the given base URL.
func NewHTTPProvider(endpoint string, opts ...ProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    "all-mpnet-base-v2",
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Compile-time interface check.
var _ Provider = (*HTTPProvider)(nil)

type embedRequest struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed generates an embedding vector for text.
func (p *HTTPProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := p.embed(ctx, text)
	observability.RecordExternalCall("embedding", time.Since(start).Seconds(), err)
	return vec, err
}

func (p *HTTPProvider) embed(ctx context.Context, text string) ([]float32, error) {
	// The index is built from lowercased examples; queries must match.
	payload, err := json.Marshal(embedRequest{Model: p.model, Text: strings.ToLower(text)})
	if err != nil {
		return nil, fmt.Errorf("encode embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed call: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embed response: %w", err)
	}

	var out embedResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embed call: empty embedding")
	}
	return out.Embedding, nil
}
