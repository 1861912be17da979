package ragpipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	claimrepo "github.com/kailas-cloud/ragpipe/internal/repository/claim"
	faqrepo "github.com/kailas-cloud/ragpipe/internal/repository/faq"
	openaiProv "github.com/kailas-cloud/ragpipe/internal/transport/openai"
	askuc "github.com/kailas-cloud/ragpipe/internal/usecase/ask"
	generationuc "github.com/kailas-cloud/ragpipe/internal/usecase/generation"
	knowledgeuc "github.com/kailas-cloud/ragpipe/internal/usecase/knowledge"
	qualityuc "github.com/kailas-cloud/ragpipe/internal/usecase/qualitygate"
)

// Client is the ragpipe SDK entry point.
type Client struct {
	entity  string
	ask     *askuc.Service
	quality *qualityuc.Service
	dbPool  *pgxpool.Pool
}

// New creates a ragpipe Client.
// A provider is required: either WithOpenAI or both WithEmbedder and
// WithCompleter. Knowledge comes from WithPostgres, WithSource, or both.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	defaults := domain.DefaultPipelineConfig()
	cfg := &clientConfig{
		embeddingModel:      defaults.EmbeddingModel,
		embeddingDimensions: defaults.Dimensions,
		completionModel:     defaults.CompletionModel,
		temperature:         defaults.Temperature,
		maxTokens:           defaults.MaxTokens,
		windowTokens:        defaults.ContextWindowTokens,
		topK:                defaults.TopK,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	embedder, completer, err := buildProviders(cfg)
	if err != nil {
		return nil, err
	}

	sources := make([]knowledgeuc.ChunkSource, 0, len(cfg.sources)+2)
	var dbPool *pgxpool.Pool
	if cfg.postgresDSN != "" {
		dbPool, err = connectPostgres(ctx, cfg.postgresDSN)
		if err != nil {
			return nil, err
		}
		sources = append(sources, faqrepo.New(dbPool, logger), claimrepo.New(dbPool, logger))
	}
	for _, s := range cfg.sources {
		sources = append(sources, &sourceAdapter{inner: s})
	}
	if len(sources) == 0 {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, errors.New("ragpipe: knowledge source required (use WithPostgres or WithSource)")
	}

	knowledgeSvc := knowledgeuc.New(embedder, logger, sources...)

	generationSvc := generationuc.New(completer, logger)
	if counter, err := generationuc.NewTokenCounter(cfg.completionModel); err == nil {
		generationSvc = generationSvc.WithContextWindow(counter, cfg.windowTokens)
	}

	askSvc := askuc.New(knowledgeSvc, embedder, generationSvc).WithTopK(cfg.topK)
	qualitySvc := qualityuc.New(knowledgeSvc, embedder, generationSvc, logger).
		WithTopK(cfg.topK).
		WithWorkers(cfg.workers).
		WithQueryTimeout(cfg.queryTimeout)

	return &Client{
		entity:  cfg.entity,
		ask:     askSvc,
		quality: qualitySvc,
		dbPool:  dbPool,
	}, nil
}

func buildProviders(cfg *clientConfig) (domain.Embedder, domain.Completer, error) {
	var embedder domain.Embedder
	var completer domain.Completer

	if cfg.embedder != nil {
		embedder = &embedderAdapter{inner: cfg.embedder}
	}
	if cfg.completer != nil {
		completer = &completerAdapter{inner: cfg.completer}
	}

	if embedder == nil {
		e, err := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
			APIKey:     cfg.openAIKey,
			BaseURL:    cfg.openAIBaseURL,
			Model:      cfg.embeddingModel,
			Dimensions: cfg.embeddingDimensions,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("ragpipe: create embedder: %w", err)
		}
		embedder = e
	}
	if completer == nil {
		c, err := openaiProv.NewCompleter(&openaiProv.CompleterConfig{
			APIKey:      cfg.openAIKey,
			BaseURL:     cfg.openAIBaseURL,
			Model:       cfg.completionModel,
			Temperature: cfg.temperature,
			MaxTokens:   cfg.maxTokens,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("ragpipe: create completer: %w", err)
		}
		completer = c
	}

	return embedder, completer, nil
}

func connectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("ragpipe: parse dsn: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("ragpipe: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ragpipe: database not ready: %w", err)
	}
	return pool, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.dbPool != nil {
		c.dbPool.Close()
	}
}

// Answer runs the pipeline for a single query.
func (c *Client) Answer(ctx context.Context, query string) (Answer, error) {
	ans, err := c.ask.Ask(ctx, c.entity, query)
	if err != nil {
		return Answer{}, fmt.Errorf("answer: %w", err)
	}
	return Answer{
		Query:      ans.Query(),
		Text:       ans.Text(),
		Sources:    ans.Sources(),
		Confidence: ans.Confidence(),
		TokensUsed: ans.TokensUsed(),
	}, nil
}

// QualityRun grades a batch of queries and returns the aggregate report.
func (c *Client) QualityRun(ctx context.Context, queries []string) (QualityReport, error) {
	rep, err := c.quality.Run(ctx, c.entity, queries)
	if err != nil {
		return QualityReport{}, fmt.Errorf("quality run: %w", err)
	}

	outcomes := rep.Outcomes()
	out := QualityReport{
		Score:    rep.Score(),
		Outcomes: make([]QualityOutcome, len(outcomes)),
	}
	for i := range outcomes {
		o := &outcomes[i]
		out.Outcomes[i] = QualityOutcome{
			Query:  o.Query(),
			Passed: o.Passed(),
			Answer: o.Answer(),
		}
	}
	return out, nil
}

// sourceAdapter wraps public Source to satisfy internal knowledge.ChunkSource.
type sourceAdapter struct {
	inner Source
}

func (a *sourceAdapter) Chunks(ctx context.Context, entity string) ([]domain.Chunk, error) {
	chunks, err := a.inner.Chunks(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("source chunks: %w", err)
	}
	out := make([]domain.Chunk, len(chunks))
	for i, ch := range chunks {
		out[i] = domain.Chunk{
			ID:        ch.ID,
			Content:   ch.Content,
			Source:    ch.Source,
			Embedding: ch.Embedding,
		}
	}
	return out, nil
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Vector,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// completerAdapter wraps public Completer to satisfy internal domain.Completer.
type completerAdapter struct {
	inner Completer
}

func (a *completerAdapter) Complete(ctx context.Context, system, user string) (domain.CompletionResult, error) {
	r, err := a.inner.Complete(ctx, system, user)
	if err != nil {
		return domain.CompletionResult{}, fmt.Errorf("complete: %w", err)
	}
	return domain.CompletionResult{
		Text:        r.Text,
		TotalTokens: r.TotalTokens,
	}, nil
}
