// Package retrieval holds the ranked retrieval hit value object.
package retrieval

import "github.com/kailas-cloud/ragpipe/internal/domain"

// Result is a chunk paired with its cosine similarity to the query, in [-1, 1].
type Result struct {
	chunk domain.Chunk
	score float64
}

// New creates a retrieval result.
func New(chunk domain.Chunk, score float64) Result {
	return Result{chunk: chunk, score: score}
}

// Chunk returns the retrieved chunk.
func (r *Result) Chunk() domain.Chunk { return r.chunk }

// Score returns the cosine similarity score.
func (r *Result) Score() float64 { return r.score }
