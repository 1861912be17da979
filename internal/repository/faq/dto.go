package faq

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pgvector/pgvector-go"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

var validate = validator.New()

// faqRow mirrors one row of the faqs table.
// Embedding is nullable: entries without a precomputed vector are embedded
// lazily by the knowledge loader.
type faqRow struct {
	ID        int64            `validate:"required"`
	Question  string           `validate:"required"`
	Answer    string           `validate:"required"`
	Category  string           `validate:"-"`
	Embedding *pgvector.Vector `validate:"-"`
}

// toChunk converts a validated row into a domain chunk.
// Content pairs the question with its answer so the retriever matches
// either phrasing; the category doubles as the citation label.
func (r faqRow) toChunk() (domain.Chunk, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Chunk{}, fmt.Errorf("validate faq row: %w", err)
	}

	source := r.Category
	if source == "" {
		source = "FAQ"
	}

	chunk := domain.Chunk{
		ID:      fmt.Sprintf("faq:%d", r.ID),
		Content: fmt.Sprintf("Q: %s\nA: %s", r.Question, r.Answer),
		Source:  source,
	}
	if r.Embedding != nil {
		chunk.Embedding = r.Embedding.Slice()
	}
	return chunk, nil
}
