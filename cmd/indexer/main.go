// Package main loads intent training examples from a JSON file, embeds them
// and upserts the vectors into the vector index for the semantic fallback.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"solana-blink-bot/internal/embedding"
	"solana-blink-bot/internal/vectorindex"
)

func main() {
	intentsFile := flag.String("intents-file", "data/intents.json", "JSON file mapping intent labels to example phrases")
	embedEndpoint := flag.String("embed-endpoint", os.Getenv("EMBED_ENDPOINT"), "Embedding service endpoint")
	indexEndpoint := flag.String("index-endpoint", os.Getenv("VECTOR_INDEX_ENDPOINT"), "Vector index endpoint")
	indexAPIKey := flag.String("index-api-key", os.Getenv("VECTOR_INDEX_API_KEY"), "Vector index API key")
	timeout := flag.Duration("timeout", 5*time.Minute, "Overall run deadline")
	flag.Parse()

	logger := log.New(os.Stdout, "[indexer] ", log.LstdFlags)

	if *embedEndpoint == "" || *indexEndpoint == "" {
		logger.Fatal("--embed-endpoint and --index-endpoint are required")
	}

	data, err := os.ReadFile(*intentsFile)
	if err != nil {
		logger.Fatalf("Failed to read intents file: %v", err)
	}

	var intents map[string][]string
	if err := json.Unmarshal(data, &intents); err != nil {
		logger.Fatalf("Failed to parse intents file: %v", err)
	}
	if len(intents) == 0 {
		logger.Fatal("Intents file is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	provider := embedding.NewHTTPProvider(*embedEndpoint)
	index := vectorindex.NewHTTPIndex(*indexEndpoint, vectorindex.WithAPIKey(*indexAPIKey))

	// Deterministic IDs: {intent}_{i} in label order
	labels := make([]string, 0, len(intents))
	for label := range intents {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var items []vectorindex.Item
	for _, label := range labels {
		for i, example := range intents[label] {
			vector, err := provider.Embed(ctx, example)
			if err != nil {
				logger.Fatalf("Failed to embed %q: %v", example, err)
			}
			items = append(items, vectorindex.Item{
				ID:     fmt.Sprintf("%s_%d", label, i),
				Vector: vector,
				Label:  label,
			})
		}
		logger.Printf("Embedded %d examples for intent %s", len(intents[label]), label)
	}

	if err := index.Upsert(ctx, items); err != nil {
		logger.Fatalf("Failed to upsert vectors: %v", err)
	}

	logger.Printf("Upserted %d vectors for %d intents", len(items), len(labels))
}
