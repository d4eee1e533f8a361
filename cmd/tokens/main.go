// Package main refreshes the token symbol cache from the full registry list.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"solana-blink-bot/internal/storage"
	"solana-blink-bot/internal/storage/file"
	"solana-blink-bot/internal/storage/migrations"
	pgstore "solana-blink-bot/internal/storage/postgres"
	"solana-blink-bot/internal/tokenapi"
)

func main() {
	store := flag.String("store", envOr("TOKEN_STORE", "file"), "Token cache backend: file or postgres")
	cacheFile := flag.String("cache-file", envOr("TOKEN_CACHE_FILE", "tokens_cache.json"), "Token cache file path (file store)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (postgres store)")
	tokenAPI := flag.String("token-api", os.Getenv("TOKEN_API_ENDPOINT"), "Token registry API endpoint")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall run deadline")
	flag.Parse()

	logger := log.New(os.Stdout, "[tokens] ", log.LstdFlags)

	if *tokenAPI == "" {
		logger.Fatal("--token-api is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cacheStore, cleanup, err := createStore(ctx, *store, *cacheFile, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to create store: %v", err)
	}
	defer cleanup()

	client := tokenapi.NewClient(*tokenAPI, tokenapi.WithTimeout(*timeout))

	logger.Println("Fetching full token list...")
	symbols, err := client.FetchAll(ctx)
	if err != nil {
		logger.Fatalf("Failed to fetch token list: %v", err)
	}
	if len(symbols) == 0 {
		logger.Fatal("Token list is empty, refusing to overwrite cache")
	}

	if err := cacheStore.Save(ctx, symbols); err != nil {
		logger.Fatalf("Failed to save token cache: %v", err)
	}

	logger.Printf("Cached %d token symbols", len(symbols))
}

func createStore(ctx context.Context, store, cacheFile, postgresDSN string) (storage.TokenCacheStore, func(), error) {
	switch store {
	case "file":
		return file.NewTokenCacheStore(cacheFile), func() {}, nil
	case "postgres":
		if postgresDSN == "" {
			return nil, nil, fmt.Errorf("--postgres-dsn is required with --store=postgres")
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		return pgstore.NewTokenCacheStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", store)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
