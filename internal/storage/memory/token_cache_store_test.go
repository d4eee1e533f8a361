package memory

import (
	"context"
	"errors"
	"testing"

	"solana-blink-bot/internal/storage"
)

func TestTokenCacheStore_LoadBeforeSave(t *testing.T) {
	store := NewTokenCacheStore()

	_, err := store.Load(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenCacheStore_SaveLoad(t *testing.T) {
	store := NewTokenCacheStore()
	ctx := context.Background()

	if err := store.Save(ctx, []string{"SOL", "USDC"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != "SOL" {
		t.Errorf("unexpected symbols: %v", loaded)
	}

	// Saving an empty (non-nil) list is a valid full rewrite.
	if err := store.Save(ctx, []string{}); err != nil {
		t.Fatalf("Save empty failed: %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after empty save failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty list, got %v", loaded)
	}
}
