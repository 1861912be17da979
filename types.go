package ragpipe

import "context"

// Chunk is a unit of retrievable knowledge.
type Chunk struct {
	ID        string
	Content   string
	Source    string
	Embedding []float32 // optional; missing vectors are embedded on load
}

// Source supplies knowledge chunks, optionally filtered by entity.
type Source interface {
	Chunks(ctx context.Context, entity string) ([]Chunk, error)
}

// Embedding is the result of vectorizing a text.
type Embedding struct {
	Vector       []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implement it to plug in a custom provider.
type Embedder interface {
	Embed(ctx context.Context, text string) (Embedding, error)
}

// Completion is the result of a chat completion.
type Completion struct {
	Text        string
	TotalTokens int
}

// Completer generates text. Implement it to plug in a custom provider.
type Completer interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
}

// Answer is a generated, source-grounded response to one query.
type Answer struct {
	Query      string
	Text       string
	Sources    []string
	Confidence float64
	TokensUsed int
}

// QualityOutcome is the graded result for one query in a quality run.
type QualityOutcome struct {
	Query  string
	Passed bool
	Answer string
}

// QualityReport aggregates a quality run.
type QualityReport struct {
	Score    float64 // fraction of queries that passed, in [0, 1]
	Outcomes []QualityOutcome
}
