package knowledge

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// ChunkSource supplies knowledge chunks, optionally filtered by entity.
type ChunkSource interface {
	Chunks(ctx context.Context, entity string) ([]domain.Chunk, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
