package vectorindex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPIndex_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.TopK)
		assert.True(t, req.IncludeMetadata)

		w.Write([]byte(`{"matches":[{"id":"swap_0","score":0.91,"metadata":{"intent":"swap"}}]}`))
	}))
	defer srv.Close()

	index := NewHTTPIndex(srv.URL)
	matches, err := index.Query(context.Background(), []float32{0.1, 0.2}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "swap", matches[0].Label)
	assert.InDelta(t, 0.91, matches[0].Score, 1e-9)
}

func TestHTTPIndex_QueryNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[]}`))
	}))
	defer srv.Close()

	index := NewHTTPIndex(srv.URL)
	matches, err := index.Query(context.Background(), []float32{0.1}, 1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestHTTPIndex_Upsert(t *testing.T) {
	var got upsertRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))
		w.Write([]byte(`{"upsertedCount":1}`))
	}))
	defer srv.Close()

	index := NewHTTPIndex(srv.URL, WithAPIKey("secret"))
	err := index.Upsert(context.Background(), []Item{
		{ID: "stake_0", Vector: []float32{1, 0}, Label: "stake"},
	})
	require.NoError(t, err)
	require.Len(t, got.Vectors, 1)
	assert.Equal(t, "stake", got.Vectors[0].Metadata["intent"])
}

func TestHTTPIndex_QueryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	index := NewHTTPIndex(srv.URL)
	_, err := index.Query(context.Background(), []float32{0.1}, 1)
	require.Error(t, err)
}
