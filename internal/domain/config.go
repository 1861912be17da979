package domain

// PipelineConfig holds internal pipeline defaults, not exposed to clients.
type PipelineConfig struct {
	EmbeddingModel      string
	Dimensions          int
	CompletionModel     string
	Temperature         float32
	MaxTokens           int
	ContextWindowTokens int
	TopK                int
}

// DefaultPipelineConfig returns the default configuration tuned for
// OpenAI-compatible providers.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		EmbeddingModel:      "text-embedding-3-small",
		Dimensions:          1536,
		CompletionModel:     "gpt-4o-mini",
		Temperature:         0.3,
		MaxTokens:           500,
		ContextWindowTokens: 8000,
		TopK:                5,
	}
}
