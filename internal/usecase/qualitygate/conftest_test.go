package qualitygate

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
	"github.com/kailas-cloud/ragpipe/internal/usecase/knowledge"
)

type mockPool struct {
	chunks  []domain.Chunk
	dropped []knowledge.EmbedFailure
	err     error
}

func (m *mockPool) Load(_ context.Context, _ string) ([]domain.Chunk, []knowledge.EmbedFailure, error) {
	return m.chunks, m.dropped, m.err
}

type mockEmbedder struct {
	vec     []float32
	failFor map[string]error // query text -> error
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	if err, ok := m.failFor[text]; ok {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// mockGenerator answers with a configurable confidence per query and can be
// told to fail specific queries. Call count is atomic: the worker-pool tests
// invoke it concurrently.
type mockGenerator struct {
	confidence float64
	failFor    map[string]error
	calls      atomic.Int64
}

func (m *mockGenerator) Generate(
	_ context.Context, query string, contextChunks []domret.Result,
) (answer.Answer, error) {
	m.calls.Add(1)
	if err, ok := m.failFor[query]; ok {
		return answer.Answer{}, err
	}
	sources := make([]string, len(contextChunks))
	for i := range contextChunks {
		c := contextChunks[i].Chunk()
		sources[i] = c.Source
	}
	text := "answer to " + query + " " + strings.Repeat(".", 60)
	return answer.New(query, text, sources, m.confidence, 5), nil
}

func poolOf(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:        string(rune('a' + i)),
			Content:   "content",
			Source:    "src",
			Embedding: []float32{1, 0},
		}
	}
	return chunks
}
