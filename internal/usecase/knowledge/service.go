// Package knowledge assembles the retrieval candidate pool from the
// configured chunk sources and backfills missing embeddings.
package knowledge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// EmbedFailure records a chunk dropped from the pool because it failed to embed.
type EmbedFailure struct {
	ChunkID string
	Err     error
}

// Service loads and vectorizes the candidate pool.
type Service struct {
	sources []ChunkSource
	embed   Embedder
	logger  *zap.Logger
}

// New creates a knowledge service over the given sources, queried in order.
func New(embed Embedder, logger *zap.Logger, sources ...ChunkSource) *Service {
	return &Service{sources: sources, embed: embed, logger: logger}
}

// Load reads all sources, concatenates their chunks into one pool, and embeds
// every chunk that lacks a vector. A chunk that fails to embed is excluded
// and reported in the failure list; it never fails the whole load.
// A source read failure does fail the load: a partial pool would silently
// skew every downstream ranking.
func (s *Service) Load(ctx context.Context, entity string) ([]domain.Chunk, []EmbedFailure, error) {
	var pool []domain.Chunk
	for i, src := range s.sources {
		chunks, err := src.Chunks(ctx, entity)
		if err != nil {
			return nil, nil, fmt.Errorf("load source %d: %w", i, err)
		}
		pool = append(pool, chunks...)
	}

	ready, failed := s.embedPool(ctx, pool)

	if len(failed) > 0 {
		s.logger.Warn("Dropped chunks that failed to embed",
			zap.Int("dropped", len(failed)),
			zap.Int("pool_size", len(ready)),
		)
	}
	return ready, failed, nil
}

// embedPool backfills embeddings one chunk at a time, isolating failures.
func (s *Service) embedPool(ctx context.Context, pool []domain.Chunk) ([]domain.Chunk, []EmbedFailure) {
	ready := make([]domain.Chunk, 0, len(pool))
	var failed []EmbedFailure

	for i := range pool {
		if pool[i].HasEmbedding() {
			ready = append(ready, pool[i])
			continue
		}

		res, err := s.embed.Embed(ctx, pool[i].Content)
		if err != nil {
			s.logger.Warn("Failed to embed chunk",
				zap.String("chunk_id", pool[i].ID),
				zap.Error(err),
			)
			failed = append(failed, EmbedFailure{ChunkID: pool[i].ID, Err: err})
			continue
		}

		pool[i].SetEmbedding(res.Embedding)
		ready = append(ready, pool[i])
	}
	return ready, failed
}
