// Package retrieval ranks knowledge chunks against a query embedding.
package retrieval

import (
	"math"
	"sort"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
)

// Retrieve scores all embedded chunks against the query vector by cosine
// similarity and returns the top K, highest score first. Ties keep input order.
// Chunks without an embedding are not candidates. topK <= 0 yields no results.
// Pure function: no I/O, no mutation of the input slice.
func Retrieve(query []float32, chunks []domain.Chunk, topK int) []domret.Result {
	if topK <= 0 {
		return nil
	}

	results := make([]domret.Result, 0, len(chunks))
	for _, c := range chunks {
		if !c.HasEmbedding() {
			continue
		}
		results = append(results, domret.New(c, CosineSimilarity(query, c.Embedding)))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// CosineSimilarity returns dot(a,b) / (||a|| * ||b||) in [-1, 1].
// Vectors of different lengths compare as 0 (a retrieval miss, not an error),
// and a zero-magnitude vector also scores 0 to guard the division.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
