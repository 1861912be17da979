package domain

// Chunk is a unit of retrievable knowledge: a snippet of source text with an
// optional precomputed embedding. Chunks live for a single pipeline invocation;
// the only mutation they see is attaching a computed embedding.
type Chunk struct {
	ID        string
	Content   string
	Source    string // provenance label, used for citation display
	Embedding []float32
}

// HasEmbedding reports whether the chunk carries a vector and is therefore a
// retrieval candidate.
func (c *Chunk) HasEmbedding() bool { return len(c.Embedding) > 0 }

// SetEmbedding attaches a computed vector to the chunk.
func (c *Chunk) SetEmbedding(vec []float32) { c.Embedding = vec }
