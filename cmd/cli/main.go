// Package main provides an interactive shell: one free-text query per line,
// answered with the detected intent and the extracted action record.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"solana-blink-bot/internal/classify"
	"solana-blink-bot/internal/dispatch"
	"solana-blink-bot/internal/embedding"
	"solana-blink-bot/internal/processor"
	"solana-blink-bot/internal/registry"
	"solana-blink-bot/internal/storage"
	"solana-blink-bot/internal/storage/file"
	"solana-blink-bot/internal/storage/memory"
	"solana-blink-bot/internal/tokenapi"
	"solana-blink-bot/internal/vectorindex"
)

func main() {
	cacheFile := flag.String("cache-file", envOr("TOKEN_CACHE_FILE", "tokens_cache.json"), "Token cache file path")
	useMemory := flag.Bool("use-memory", false, "Use in-memory token cache instead of the cache file")
	tokenAPI := flag.String("token-api", os.Getenv("TOKEN_API_ENDPOINT"), "Token registry API endpoint for symbol verification (optional)")
	embedEndpoint := flag.String("embed-endpoint", os.Getenv("EMBED_ENDPOINT"), "Embedding service endpoint (optional, enables semantic fallback)")
	indexEndpoint := flag.String("index-endpoint", os.Getenv("VECTOR_INDEX_ENDPOINT"), "Vector index endpoint (required with --embed-endpoint)")
	indexAPIKey := flag.String("index-api-key", os.Getenv("VECTOR_INDEX_API_KEY"), "Vector index API key")
	verbose := flag.Bool("verbose", false, "Log classification details to stderr")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "[cli] ", log.LstdFlags)
	}

	if *embedEndpoint != "" && *indexEndpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: --index-endpoint is required with --embed-endpoint")
		os.Exit(1)
	}

	var cacheStore storage.TokenCacheStore
	if *useMemory {
		cacheStore = memory.NewTokenCacheStore()
	} else {
		cacheStore = file.NewTokenCacheStore(*cacheFile)
	}

	regOpts := []registry.Option{registry.WithLogger(logger)}
	if *tokenAPI != "" {
		regOpts = append(regOpts, registry.WithVerifier(tokenapi.NewClient(*tokenAPI)))
	}
	reg := registry.New(cacheStore, regOpts...)

	var semantic *classify.Semantic
	if *embedEndpoint != "" {
		provider := embedding.NewHTTPProvider(*embedEndpoint)
		index := vectorindex.NewHTTPIndex(*indexEndpoint, vectorindex.WithAPIKey(*indexAPIKey))
		semantic = classify.NewSemantic(provider, index, logger)
	}

	proc := processor.New(
		classify.NewClassifier(classify.NewRules(), semantic),
		dispatch.NewDispatcher(reg),
		processor.WithLogger(logger),
	)

	runShell(context.Background(), proc, os.Stdin, os.Stdout)
}

// runShell reads queries line by line until EOF or an exit command.
func runShell(ctx context.Context, proc *processor.Processor, in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "Blink Bot CLI is running. Type 'exit' to quit.\n\n")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter your query: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		lower := strings.ToLower(query)
		if lower == "exit" || lower == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		outcome := proc.Process(ctx, query)
		if outcome.Undecided() {
			fmt.Fprintf(out, "Sorry, I could not determine your intent.\n\n")
			continue
		}

		if outcome.Result == nil {
			fmt.Fprintf(out, "Detected intent: %s, but could not extract details.\n\n", outcome.Intent)
			continue
		}

		fmt.Fprintf(out, "\nDetected intent: %s\n", outcome.Intent)
		fmt.Fprintf(out, "Result: %s\n", formatResult(outcome.Result))
		if outcome.Result.URL != "" {
			fmt.Fprintf(out, "Link: %s\n", outcome.Result.URL)
		}

		fmt.Fprintf(out, "\n%s\n\n", strings.Repeat("-", 50))
	}
}

func formatResult(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
