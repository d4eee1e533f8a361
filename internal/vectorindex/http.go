package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/observability"
)

// DefaultTimeout bounds one index round trip.
const DefaultTimeout = 15 * time.Second

// HTTPIndex implements Index against a Pinecone-style HTTP service:
// POST {endpoint}/query and POST {endpoint}/vectors/upsert.
type HTTPIndex struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// IndexOption configures HTTPIndex.
type IndexOption func(*HTTPIndex)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) IndexOption {
	return func(i *HTTPIndex) {
		i.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) IndexOption {
	return func(i *HTTPIndex) {
		i.client = client
	}
}

// WithAPIKey sets the Api-Key header sent with each request.
func WithAPIKey(key string) IndexOption {
	return func(i *HTTPIndex) {
		i.apiKey = key
	}
}

// NewHTTPIndex creates a vector index client for the given base URL.
func NewHTTPIndex(endpoint string, opts ...IndexOption) *HTTPIndex {
	i := &HTTPIndex{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Compile-time interface check.
var _ Index = (*HTTPIndex)(nil)

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []matchEntry `json:"matches"`
}

type matchEntry struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

type upsertRequest struct {
	Vectors []vectorEntry `json:"vectors"`
}

type vectorEntry struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

// Query returns the topK nearest matches with their intent labels.
func (i *HTTPIndex) Query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	start := time.Now()
	matches, err := i.query(ctx, vector, topK)
	observability.RecordExternalCall("vector_index", time.Since(start).Seconds(), err)
	return matches, err
}

func (i *HTTPIndex) query(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	if topK <= 0 {
		topK = 1
	}

	body, err := i.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, err
	}

	var payload queryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	matches := make([]domain.Match, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		matches = append(matches, domain.Match{
			ID:    m.ID,
			Label: m.Metadata["intent"],
			Score: m.Score,
		})
	}
	return matches, nil
}

// Upsert inserts or replaces items by ID.
func (i *HTTPIndex) Upsert(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	req := upsertRequest{Vectors: make([]vectorEntry, len(items))}
	for n, item := range items {
		req.Vectors[n] = vectorEntry{
			ID:       item.ID,
			Values:   item.Vector,
			Metadata: map[string]string{"intent": item.Label},
		}
	}

	_, err := i.post(ctx, "/vectors/upsert", req)
	return err
}

func (i *HTTPIndex) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		req.Header.Set("Api-Key", i.apiKey)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s call: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s call: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return body, nil
}
