// Package ask runs the single-shot pipeline: embed the query, rank the pool,
// and generate a grounded answer.
package ask

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

const defaultTopK = 5

// Service answers a single query against the knowledge pool.
type Service struct {
	pool  PoolLoader
	embed Embedder
	gen   Generator
	topK  int
}

// New creates an ask service.
func New(pool PoolLoader, embed Embedder, gen Generator) *Service {
	return &Service{pool: pool, embed: embed, gen: gen, topK: defaultTopK}
}

// WithTopK configures how many chunks are retrieved into the context.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Ask runs embed, retrieve, and generate for one query.
// Unlike the quality gate, failures propagate to the caller.
func (s *Service) Ask(ctx context.Context, entity, query string) (answer.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return answer.Answer{}, domain.ErrEmptyQuery
	}

	pool, _, err := s.pool.Load(ctx, entity)
	if err != nil {
		return answer.Answer{}, fmt.Errorf("load pool: %w", err)
	}

	embRes, err := s.embed.Embed(ctx, query)
	if err != nil {
		return answer.Answer{}, fmt.Errorf("vectorize query: %w", err)
	}

	results := retrieval.Retrieve(embRes.Embedding, pool, s.topK)

	ans, err := s.gen.Generate(ctx, query, results)
	if err != nil {
		return answer.Answer{}, fmt.Errorf("generate: %w", err)
	}
	return ans, nil
}
