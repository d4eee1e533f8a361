package classify

import (
	"context"
	"errors"
	"testing"

	"solana-blink-bot/internal/domain"
	"solana-blink-bot/internal/vectorindex"
	vecmemory "solana-blink-bot/internal/vectorindex/memory"
)

// stubProvider returns a fixed vector per known text.
type stubProvider struct {
	vectors map[string][]float32
	err     error
}

func (p *stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	if v, ok := p.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func newSemanticFixture(t *testing.T) *Semantic {
	t.Helper()

	index := vecmemory.NewIndex()
	err := index.Upsert(context.Background(), []vectorindex.Item{
		{ID: "swap_0", Vector: []float32{1, 0, 0}, Label: "swap"},
		{ID: "transfer_0", Vector: []float32{0, 1, 0}, Label: "transfer"},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	provider := &stubProvider{vectors: map[string][]float32{
		"swap 10 usdc to sol": {0.9, 0.1, 0},
		"send 50 usdc":        {0.1, 0.9, 0},
	}}
	return NewSemantic(provider, index, nil)
}

func TestClassifier_RuleShortCircuitsSemantic(t *testing.T) {
	classifier := NewClassifier(NewRules(), newSemanticFixture(t))

	intent, resolution, ok := classifier.Classify(context.Background(), "stake BONK")
	if !ok || intent != domain.IntentStake {
		t.Fatalf("expected stake, got %s (%v)", intent, ok)
	}
	if resolution != domain.ResolutionRule {
		t.Errorf("expected rule resolution, got %s", resolution)
	}
}

func TestClassifier_SemanticFallback(t *testing.T) {
	classifier := NewClassifier(NewRules(), newSemanticFixture(t))

	intent, resolution, ok := classifier.Classify(context.Background(), "swap 10 usdc to sol")
	if !ok || intent != domain.IntentSwap {
		t.Fatalf("expected swap, got %s (%v)", intent, ok)
	}
	if resolution != domain.ResolutionSemantic {
		t.Errorf("expected semantic resolution, got %s", resolution)
	}
}

func TestSemantic_UnknownLabelPassesThrough(t *testing.T) {
	index := vecmemory.NewIndex()
	err := index.Upsert(context.Background(), []vectorindex.Item{
		{ID: "teleport_0", Vector: []float32{1, 0, 0}, Label: "teleport"},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	provider := &stubProvider{vectors: map[string][]float32{
		"beam me up": {1, 0, 0},
	}}
	semantic := NewSemantic(provider, index, nil)

	intent, ok := semantic.Classify(context.Background(), "beam me up")
	if !ok || intent != domain.Intent("teleport") {
		t.Fatalf("labels outside the known set must pass through: got %s (%v)", intent, ok)
	}
}

func TestClassifier_EmbeddingFailureDegradesToUndecided(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	semantic := NewSemantic(provider, vecmemory.NewIndex(), nil)
	classifier := NewClassifier(NewRules(), semantic)

	_, resolution, ok := classifier.Classify(context.Background(), "swap 10 usdc to sol")
	if ok {
		t.Fatal("embedding failure must leave the query undecided")
	}
	if resolution != domain.ResolutionNone {
		t.Errorf("expected none resolution, got %s", resolution)
	}
}

func TestClassifier_EmptyIndexUndecided(t *testing.T) {
	semantic := NewSemantic(&stubProvider{}, vecmemory.NewIndex(), nil)
	classifier := NewClassifier(NewRules(), semantic)

	if _, _, ok := classifier.Classify(context.Background(), "unclassifiable"); ok {
		t.Fatal("empty index must leave the query undecided")
	}
}

func TestClassifier_NoSemantic(t *testing.T) {
	classifier := NewClassifier(NewRules(), nil)

	if _, _, ok := classifier.Classify(context.Background(), "swap 10 usdc to sol"); ok {
		t.Fatal("without semantic fallback, non-rule queries stay undecided")
	}
}
