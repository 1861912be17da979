package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
	"github.com/kailas-cloud/ragpipe/internal/usecase/knowledge"
)

// --- Mocks ---

type mockPool struct {
	chunks []domain.Chunk
	err    error
}

func (m *mockPool) Load(_ context.Context, _ string) ([]domain.Chunk, []knowledge.EmbedFailure, error) {
	return m.chunks, nil, m.err
}

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: m.vec}, m.err
}

type mockGenerator struct {
	lastContext []domret.Result
	calls       int
	err         error
}

func (m *mockGenerator) Generate(
	_ context.Context, query string, contextChunks []domret.Result,
) (answer.Answer, error) {
	m.calls++
	m.lastContext = contextChunks
	if m.err != nil {
		return answer.Answer{}, m.err
	}
	sources := make([]string, len(contextChunks))
	for i := range contextChunks {
		c := contextChunks[i].Chunk()
		sources[i] = c.Source
	}
	return answer.New(query, "generated", sources, 1.0, 10), nil
}

func embeddedChunk(id string, vec []float32) domain.Chunk {
	return domain.Chunk{ID: id, Content: "content", Source: "src-" + id, Embedding: vec}
}

func TestAsk_EndToEnd(t *testing.T) {
	// Five chunks in the pool; two never got an embedding, so exactly three
	// are retrieval candidates, all scoring above 0.5 against the query.
	pool := &mockPool{chunks: []domain.Chunk{
		embeddedChunk("ok", []float32{0.7, 0.714}),   // ~0.7
		{ID: "bare-1", Content: "x", Source: "src-bare-1"},
		embeddedChunk("best", []float32{1, 0}),       // 1.0
		{ID: "bare-2", Content: "y", Source: "src-bare-2"},
		embeddedChunk("good", []float32{0.9, 0.436}), // ~0.9
	}}
	gen := &mockGenerator{}
	svc := New(pool, &mockEmbedder{vec: []float32{1, 0}}, gen)

	ans, err := svc.Ask(context.Background(), "", "query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.lastContext) != 3 {
		t.Fatalf("generator got %d chunks, want the 3 valid candidates", len(gen.lastContext))
	}
	wantOrder := []string{"src-best", "src-good", "src-ok"}
	if len(ans.Sources()) != 3 {
		t.Fatalf("Sources() len = %d, want 3", len(ans.Sources()))
	}
	for i, want := range wantOrder {
		if ans.Sources()[i] != want {
			t.Errorf("Sources()[%d] = %q, want %q", i, ans.Sources()[i], want)
		}
	}
}

func TestAsk_TopKLimitsContext(t *testing.T) {
	pool := &mockPool{chunks: []domain.Chunk{
		embeddedChunk("a", []float32{1, 0}),
		embeddedChunk("b", []float32{0.9, 0.1}),
		embeddedChunk("c", []float32{0.8, 0.2}),
	}}
	gen := &mockGenerator{}
	svc := New(pool, &mockEmbedder{vec: []float32{1, 0}}, gen).WithTopK(2)

	if _, err := svc.Ask(context.Background(), "", "query"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.lastContext) != 2 {
		t.Errorf("generator got %d chunks, want 2", len(gen.lastContext))
	}
}

func TestAsk_EmptyQuery(t *testing.T) {
	svc := New(&mockPool{}, &mockEmbedder{}, &mockGenerator{})

	_, err := svc.Ask(context.Background(), "", "   ")
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestAsk_QueryEmbedFailureIsFatal(t *testing.T) {
	pool := &mockPool{chunks: []domain.Chunk{embeddedChunk("a", []float32{1})}}
	gen := &mockGenerator{}
	svc := New(pool, &mockEmbedder{err: domain.ErrEmbeddingProviderError}, gen)

	_, err := svc.Ask(context.Background(), "", "query")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected ErrEmbeddingProviderError, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times after embed failure, want 0", gen.calls)
	}
}

func TestAsk_PoolLoadFailure(t *testing.T) {
	svc := New(&mockPool{err: errors.New("db down")}, &mockEmbedder{}, &mockGenerator{})

	if _, err := svc.Ask(context.Background(), "", "query"); err == nil {
		t.Fatal("expected error when pool load fails")
	}
}
