package ragpipe

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	openAIKey     string
	openAIBaseURL string

	embeddingModel      string
	embeddingDimensions int
	completionModel     string
	temperature         float32
	maxTokens           int
	windowTokens        int

	postgresDSN string
	sources     []Source

	embedder  Embedder
	completer Completer

	entity       string
	topK         int
	workers      int
	queryTimeout time.Duration

	logger *zap.Logger
}

// WithOpenAI sets the OpenAI API key used for both embeddings and completions.
func WithOpenAI(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIKey = apiKey
	})
}

// WithOpenAIBaseURL points the provider at an OpenAI-compatible endpoint.
func WithOpenAIBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.openAIBaseURL = baseURL
	})
}

// WithEmbeddingModel sets the embedding model and its vector dimensions.
// Defaults: text-embedding-3-small, 1536.
func WithEmbeddingModel(model string, dimensions int) Option {
	return optionFunc(func(c *clientConfig) {
		c.embeddingModel = model
		c.embeddingDimensions = dimensions
	})
}

// WithCompletionModel sets the completion model. Default: gpt-4o-mini.
func WithCompletionModel(model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.completionModel = model
	})
}

// WithGeneration tunes completion sampling. Defaults: temperature 0.3, 500 max tokens.
func WithGeneration(temperature float32, maxTokens int) Option {
	return optionFunc(func(c *clientConfig) {
		c.temperature = temperature
		c.maxTokens = maxTokens
	})
}

// WithContextWindow caps how many prompt tokens retrieved chunks may occupy.
// Default: 8000. Requires a tokenizer for the completion model; silently
// disabled when none is available.
func WithContextWindow(tokens int) Option {
	return optionFunc(func(c *clientConfig) {
		c.windowTokens = tokens
	})
}

// WithPostgres connects the built-in FAQ and claim sources to a Postgres
// knowledge base.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.postgresDSN = dsn
	})
}

// WithSource adds a custom knowledge source. May be repeated; sources are
// concatenated in registration order.
func WithSource(s Source) Option {
	return optionFunc(func(c *clientConfig) {
		c.sources = append(c.sources, s)
	})
}

// WithEmbedder replaces the OpenAI embedder with a custom provider.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithCompleter replaces the OpenAI completer with a custom provider.
func WithCompleter(p Completer) Option {
	return optionFunc(func(c *clientConfig) {
		c.completer = p
	})
}

// WithEntity scopes all queries to one entity's knowledge.
func WithEntity(entity string) Option {
	return optionFunc(func(c *clientConfig) {
		c.entity = entity
	})
}

// WithTopK sets how many chunks are retrieved into the context. Default: 5.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithWorkers sets quality run concurrency. Default: 1 (sequential).
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithQueryTimeout bounds each query in a quality run. Default: unbounded.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
