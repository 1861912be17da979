// Package qualitygate grades a batch of canned queries against the knowledge
// pool and reports an aggregate pass rate.
package qualitygate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	"github.com/kailas-cloud/ragpipe/internal/domain/report"
	"github.com/kailas-cloud/ragpipe/internal/metrics"
	"github.com/kailas-cloud/ragpipe/internal/usecase/retrieval"
)

// NoContentAvailable is the answer recorded for every query when the
// candidate pool is empty. Defined behavior, not an error.
const NoContentAvailable = "No content available"

// passThreshold is the minimum confidence for a query to pass the gate.
const passThreshold = 0.5

const defaultTopK = 5

// Service runs the quality gate batch harness.
type Service struct {
	pool    PoolLoader
	embed   Embedder
	gen     Generator
	topK    int
	workers int
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a quality gate service. Default execution is sequential.
func New(pool PoolLoader, embed Embedder, gen Generator, logger *zap.Logger) *Service {
	return &Service{
		pool: pool, embed: embed, gen: gen,
		topK: defaultTopK, workers: 1, logger: logger,
	}
}

// WithTopK configures how many chunks are retrieved per query.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// WithWorkers bounds concurrent query fan-out. 1 keeps strict sequential
// execution; result ordering is preserved either way.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithQueryTimeout caps the time one query may spend in embed+retrieve+generate,
// so a hung provider call cannot stall the whole batch. 0 disables the cap.
func (s *Service) WithQueryTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Run grades the given queries against the pool for the given entity filter.
// Per-query failures are caught and recorded as failed outcomes with the error
// text as the answer; one failing query never aborts the batch.
// Outcomes preserve the input query order.
func (s *Service) Run(ctx context.Context, entity string, queries []string) (report.Report, error) {
	pool, dropped, err := s.pool.Load(ctx, entity)
	if err != nil {
		return report.Report{}, fmt.Errorf("load pool: %w", err)
	}

	s.logger.Info("Quality run started",
		zap.Int("queries", len(queries)),
		zap.Int("pool_size", len(pool)),
		zap.Int("chunks_dropped", len(dropped)),
	)

	outcomes := make([]report.Outcome, len(queries))

	if len(pool) == 0 {
		for i, q := range queries {
			outcomes[i] = report.NewOutcome(q, false, NoContentAvailable)
		}
		return s.finish(outcomes), nil
	}

	if s.workers > 1 {
		s.runParallel(ctx, pool, queries, outcomes)
	} else {
		for i, q := range queries {
			outcomes[i] = s.runQuery(ctx, q, pool)
		}
	}

	return s.finish(outcomes), nil
}

// runParallel fans queries out over a bounded worker pool, writing each
// outcome to its input index.
func (s *Service) runParallel(
	ctx context.Context, pool []domain.Chunk, queries []string, outcomes []report.Outcome,
) {
	wp, err := ants.NewPool(s.workers)
	if err != nil {
		// Pool construction only fails on invalid size; fall back to sequential.
		for i, q := range queries {
			outcomes[i] = s.runQuery(ctx, q, pool)
		}
		return
	}
	defer wp.Release()

	var wg sync.WaitGroup
	for i, q := range queries {
		i, q := i, q
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outcomes[i] = s.runQuery(ctx, q, pool)
		}
		if err := wp.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()
}

// runQuery grades one query: embed, retrieve, generate, judge.
func (s *Service) runQuery(ctx context.Context, query string, pool []domain.Chunk) report.Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	embRes, err := s.embed.Embed(ctx, query)
	if err != nil {
		return report.NewOutcome(query, false, err.Error())
	}

	results := retrieval.Retrieve(embRes.Embedding, pool, s.topK)

	ans, err := s.gen.Generate(ctx, query, results)
	if err != nil {
		return report.NewOutcome(query, false, err.Error())
	}

	passed := ans.Confidence() > passThreshold && len(ans.Sources()) > 0
	return report.NewOutcome(query, passed, ans.Text())
}

func (s *Service) finish(outcomes []report.Outcome) report.Report {
	rep := report.New(outcomes)
	metrics.QualityRunScore.Set(rep.Score())
	s.logger.Info("Quality run finished", zap.Float64("score", rep.Score()))
	return rep
}
