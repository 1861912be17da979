package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// Completer is the shared text generation contract between layers.
type Completer interface {
	Complete(ctx context.Context, system, user string) (CompletionResult, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// CompletionResult carries the generated text and token usage.
// Text is empty when the provider returned no content; callers decide the fallback.
type CompletionResult struct {
	Text        string
	TotalTokens int
}
