package claim

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pgvector/pgvector-go"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

var validate = validator.New()

// claimRow mirrors one row of the claims table.
type claimRow struct {
	ID        int64            `validate:"required"`
	ClaimType string           `validate:"required"`
	ClaimText string           `validate:"required"`
	Entity    string           `validate:"-"`
	Embedding *pgvector.Vector `validate:"-"`
}

// toChunk converts a validated row into a domain chunk.
func (r claimRow) toChunk() (domain.Chunk, error) {
	if err := validate.Struct(r); err != nil {
		return domain.Chunk{}, fmt.Errorf("validate claim row: %w", err)
	}

	chunk := domain.Chunk{
		ID:      fmt.Sprintf("claim:%d", r.ID),
		Content: r.ClaimText,
		Source:  fmt.Sprintf("Claim (%s)", r.ClaimType),
	}
	if r.Embedding != nil {
		chunk.Embedding = r.Embedding.Slice()
	}
	return chunk, nil
}
