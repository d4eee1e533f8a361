// Package main provides the HTTP front end for the query processor:
// - POST /process: one-shot query to action record
// - GET /ws: WebSocket session, one query per message
// - GET /recent: latest query log entries
// - Prometheus metrics and health endpoints
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"solana-blink-bot/internal/classify"
	"solana-blink-bot/internal/dispatch"
	"solana-blink-bot/internal/embedding"
	"solana-blink-bot/internal/observability"
	"solana-blink-bot/internal/processor"
	"solana-blink-bot/internal/registry"
	"solana-blink-bot/internal/storage"
	chstore "solana-blink-bot/internal/storage/clickhouse"
	"solana-blink-bot/internal/storage/file"
	"solana-blink-bot/internal/storage/memory"
	"solana-blink-bot/internal/storage/migrations"
	pgstore "solana-blink-bot/internal/storage/postgres"
	"solana-blink-bot/internal/tokenapi"
	"solana-blink-bot/internal/vectorindex"
)

// Server holds the processor and its supporting stores.
type Server struct {
	processor *processor.Processor
	registry  *registry.Registry
	queryLog  storage.QueryLogStore
	upgrader  websocket.Upgrader
	logger    *log.Logger
	started   time.Time
}

func main() {
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("SERVER_ADDR", ":8080"), "HTTP listen address")
	store := flag.String("store", envOr("TOKEN_STORE", "file"), "Token cache backend: file, memory or postgres")
	cacheFile := flag.String("cache-file", envOr("TOKEN_CACHE_FILE", "tokens_cache.json"), "Token cache file path (file store)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string (postgres store and query log)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (analytics query log, optional)")
	tokenAPI := flag.String("token-api", os.Getenv("TOKEN_API_ENDPOINT"), "Token registry API endpoint for symbol verification (optional)")
	embedEndpoint := flag.String("embed-endpoint", os.Getenv("EMBED_ENDPOINT"), "Embedding service endpoint (optional, enables semantic fallback)")
	indexEndpoint := flag.String("index-endpoint", os.Getenv("VECTOR_INDEX_ENDPOINT"), "Vector index endpoint (required with --embed-endpoint)")
	indexAPIKey := flag.String("index-api-key", os.Getenv("VECTOR_INDEX_API_KEY"), "Vector index API key")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if *embedEndpoint != "" && *indexEndpoint == "" {
		logger.Fatal("--index-endpoint is required with --embed-endpoint")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cacheStore, queryLog, cleanup, err := createStores(ctx, *store, *cacheFile, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Token registry with optional network verification
	regOpts := []registry.Option{registry.WithLogger(logger)}
	if *tokenAPI != "" {
		regOpts = append(regOpts, registry.WithVerifier(tokenapi.NewClient(*tokenAPI)))
	}
	reg := registry.New(cacheStore, regOpts...)

	// Semantic fallback only runs when both services are configured; the
	// rule cascade works without either.
	var semantic *classify.Semantic
	if *embedEndpoint != "" {
		provider := embedding.NewHTTPProvider(*embedEndpoint)
		index := vectorindex.NewHTTPIndex(*indexEndpoint, vectorindex.WithAPIKey(*indexAPIKey))
		semantic = classify.NewSemantic(provider, index, logger)
		logger.Printf("Semantic fallback enabled via %s", *embedEndpoint)
	} else {
		logger.Println("Semantic fallback disabled, rule cascade only")
	}

	proc := processor.New(
		classify.NewClassifier(classify.NewRules(), semantic),
		dispatch.NewDispatcher(reg),
		processor.WithLogger(logger),
		processor.WithQueryLog(queryLog),
	)

	server := &Server{
		processor: proc,
		registry:  reg,
		queryLog:  queryLog,
		upgrader:  websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
		logger:    logger,
		started:   time.Now(),
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores selects the token cache backend and wires the query log.
// The query log prefers ClickHouse when configured and falls back to the
// same backend as the token cache otherwise.
func createStores(ctx context.Context, store, cacheFile, postgresDSN, clickhouseDSN string) (storage.TokenCacheStore, storage.QueryLogStore, func(), error) {
	cleanup := func() {}

	var cacheStore storage.TokenCacheStore
	var queryLog storage.QueryLogStore

	switch store {
	case "file":
		cacheStore = file.NewTokenCacheStore(cacheFile)
		queryLog = memory.NewQueryLogStore()
	case "memory":
		cacheStore = memory.NewTokenCacheStore()
		queryLog = memory.NewQueryLogStore()
	case "postgres":
		if postgresDSN == "" {
			return nil, nil, nil, fmt.Errorf("--postgres-dsn is required with --store=postgres")
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		cacheStore = pgstore.NewTokenCacheStore(pool)
		queryLog = pgstore.NewQueryLogStore(pool)
		cleanup = pool.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", store)
	}

	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
		}
		queryLog = chstore.NewQueryLogStore(conn)
		prev := cleanup
		cleanup = func() {
			conn.Close()
			prev()
		}
	}

	return cacheStore, queryLog, cleanup, nil
}

// routes builds the HTTP mux.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/tokens", s.handleTokens)
	mux.HandleFunc("/recent", s.handleRecent)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, map[string]string{
		"status": "running",
		"uptime": time.Since(s.started).String(),
	})
}

// processRequest is the body of POST /process.
type processRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	outcome := s.processor.Process(r.Context(), req.Query)
	writeJSON(w, outcome)
}

// handleTokens reports the currently known token symbols, sorted.
func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	symbols := s.registry.Symbols(r.Context())
	writeJSON(w, map[string]any{
		"count":  len(symbols),
		"tokens": symbols,
	})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.queryLog.GetRecent(r.Context(), limit)
	if err != nil {
		s.logger.Printf("query log read failed: %v", err)
		http.Error(w, "query log unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

// handleWS runs a query-per-message session. Each text message is processed
// as one query and answered with the JSON outcome.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("websocket read failed: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		query := strings.TrimSpace(string(data))
		if query == "" {
			continue
		}

		outcome := s.processor.Process(r.Context(), query)
		if err := conn.WriteJSON(outcome); err != nil {
			s.logger.Printf("websocket write failed: %v", err)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
