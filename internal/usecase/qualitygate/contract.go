package qualitygate

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
	"github.com/kailas-cloud/ragpipe/internal/usecase/knowledge"
)

// PoolLoader assembles the embedded candidate pool.
type PoolLoader interface {
	Load(ctx context.Context, entity string) ([]domain.Chunk, []knowledge.EmbedFailure, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces an answer from retrieved context.
type Generator interface {
	Generate(ctx context.Context, query string, contextChunks []domret.Result) (answer.Answer, error)
}
