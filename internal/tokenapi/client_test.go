package tokenapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "WEN", r.URL.Query().Get("query"))
		w.Write([]byte(`{"tokens":[{"symbol":"wen","name":"Wen","address":"WENWEN..."}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	found, err := client.Search(context.Background(), "WEN")
	require.NoError(t, err)
	assert.True(t, found, "case-insensitive symbol match should be found")
}

func TestClient_SearchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tokens":[{"symbol":"WENX"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	found, err := client.Search(context.Background(), "WEN")
	require.NoError(t, err)
	assert.False(t, found, "partial matches must not count")
}

func TestClient_SearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	found, err := client.Search(context.Background(), "WEN")
	require.Error(t, err)
	assert.False(t, found)
}

func TestClient_FetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tokens":[{"symbol":"sol"},{"symbol":"USDC"},{"symbol":"Sol"},{"symbol":""}]}`))
	}))
	defer srv.Close()

	client := NewClient("http://unused", WithTokenListURL(srv.URL))
	symbols, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SOL", "USDC"}, symbols, "symbols should be unique, uppercase, sorted")
}
