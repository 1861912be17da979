package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
)

// --- Mocks ---

type mockCompleter struct {
	result     domain.CompletionResult
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (m *mockCompleter) Complete(_ context.Context, system, user string) (domain.CompletionResult, error) {
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	return m.result, m.err
}

func resultWith(id, content, source string) domret.Result {
	return domret.New(domain.Chunk{
		ID: id, Content: content, Source: source, Embedding: []float32{1},
	}, 0.9)
}

func TestGenerate_EmptyContextShortCircuits(t *testing.T) {
	completer := &mockCompleter{}
	svc := New(completer, zap.NewNop())

	ans, err := svc.Generate(context.Background(), "what is X", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ans.Text() != NoRelevantContent {
		t.Errorf("Text() = %q, want sentinel %q", ans.Text(), NoRelevantContent)
	}
	if len(ans.Sources()) != 0 {
		t.Errorf("Sources() = %v, want empty", ans.Sources())
	}
	if ans.Confidence() != 0 {
		t.Errorf("Confidence() = %f, want 0", ans.Confidence())
	}
	if ans.TokensUsed() != 0 {
		t.Errorf("TokensUsed() = %d, want 0", ans.TokensUsed())
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times, want 0", completer.calls)
	}
}

func TestGenerate_AssemblesContextInRankOrder(t *testing.T) {
	completer := &mockCompleter{
		result: domain.CompletionResult{
			Text:        "A long enough answer that easily clears the fifty character mark.",
			TotalTokens: 42,
		},
	}
	svc := New(completer, zap.NewNop())

	results := []domret.Result{
		resultWith("1", "Q: What is X?\nA: X is Y.", "Pricing"),
		resultWith("2", "X launched in 2024.", "Claim (factual)"),
		resultWith("3", "Q: Who makes X?\nA: Acme.", "General"),
	}

	ans, err := svc.Generate(context.Background(), "tell me about X", results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSources := []string{"Pricing", "Claim (factual)", "General"}
	if len(ans.Sources()) != len(wantSources) {
		t.Fatalf("Sources() len = %d, want %d", len(ans.Sources()), len(wantSources))
	}
	for i, want := range wantSources {
		if ans.Sources()[i] != want {
			t.Errorf("Sources()[%d] = %q, want %q", i, ans.Sources()[i], want)
		}
	}

	// Context block keeps rank order and prefixes each chunk with its label.
	idxPricing := strings.Index(completer.lastSystem, "[Pricing]")
	idxClaim := strings.Index(completer.lastSystem, "[Claim (factual)]")
	idxGeneral := strings.Index(completer.lastSystem, "[General]")
	if idxPricing < 0 || idxClaim < 0 || idxGeneral < 0 {
		t.Fatalf("context block missing source labels:\n%s", completer.lastSystem)
	}
	if !(idxPricing < idxClaim && idxClaim < idxGeneral) {
		t.Error("context chunks not in rank order")
	}

	if completer.lastUser != "tell me about X" {
		t.Errorf("user message = %q", completer.lastUser)
	}
	if ans.TokensUsed() != 42 {
		t.Errorf("TokensUsed() = %d, want 42", ans.TokensUsed())
	}
}

func TestGenerate_ConfidenceFromChunksAndLength(t *testing.T) {
	longAnswer := strings.Repeat("x", 60)

	tests := []struct {
		name   string
		chunks int
		text   string
		want   float64
	}{
		{"five chunks long answer", 5, longAnswer, 1.0},
		{"two chunks short answer", 2, "short", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mockCompleter{result: domain.CompletionResult{Text: tt.text}}
			svc := New(completer, zap.NewNop())

			results := make([]domret.Result, tt.chunks)
			for i := range results {
				results[i] = resultWith("id", "content", "src")
			}

			ans, err := svc.Generate(context.Background(), "q", results)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ans.Confidence() != tt.want {
				t.Errorf("Confidence() = %f, want %f", ans.Confidence(), tt.want)
			}
		})
	}
}

func TestGenerate_EmptyCompletionFallsBack(t *testing.T) {
	completer := &mockCompleter{result: domain.CompletionResult{Text: "  \n "}}
	svc := New(completer, zap.NewNop())

	ans, err := svc.Generate(context.Background(), "q", []domret.Result{resultWith("1", "c", "s")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Text() != GenerationFallback {
		t.Errorf("Text() = %q, want fallback %q", ans.Text(), GenerationFallback)
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	completer := &mockCompleter{err: domain.ErrCompletionProviderError}
	svc := New(completer, zap.NewNop())

	_, err := svc.Generate(context.Background(), "q", []domret.Result{resultWith("1", "c", "s")})
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Errorf("expected ErrCompletionProviderError, got %v", err)
	}
}

func TestGenerate_ContextWindowGuardKeepsTopChunk(t *testing.T) {
	completer := &mockCompleter{result: domain.CompletionResult{Text: strings.Repeat("a", 60)}}
	counter, err := NewTokenCounter("gpt-4o-mini")
	if err != nil {
		t.Skipf("token encoding unavailable: %v", err)
	}

	// Window barely larger than the instruction: only the first chunk survives.
	window := counter.Count(systemInstruction) + counter.Count("q") + 20
	svc := New(completer, zap.NewNop()).WithContextWindow(counter, window)

	results := []domret.Result{
		resultWith("1", "first chunk", "one"),
		resultWith("2", strings.Repeat("word ", 200), "two"),
		resultWith("3", strings.Repeat("word ", 200), "three"),
	}

	ans, err := svc.Generate(context.Background(), "q", results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ans.Sources()) == 0 {
		t.Fatal("guard dropped every chunk; must keep the top-ranked one")
	}
	if ans.Sources()[0] != "one" {
		t.Errorf("Sources()[0] = %q, want %q", ans.Sources()[0], "one")
	}
	if len(ans.Sources()) == 3 {
		t.Error("guard kept all chunks despite tiny window")
	}
}
