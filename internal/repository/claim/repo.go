// Package claim loads insurance claim records from Postgres as knowledge chunks.
package claim

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// querier is the consumer interface for claim queries (ISP).
// *pgxpool.Pool satisfies it.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo implements usecase/knowledge.ChunkSource over the claims table.
type Repo struct {
	db     querier
	logger *zap.Logger
}

// New creates a claim repository.
func New(db querier, logger *zap.Logger) *Repo {
	return &Repo{db: db, logger: logger}
}

const selectClaims = `
SELECT id, claim_type, claim_text, entity, embedding
FROM claims
ORDER BY id`

const selectClaimsByEntity = `
SELECT id, claim_type, claim_text, entity, embedding
FROM claims
WHERE entity = $1
ORDER BY id`

// Chunks returns claim records as chunks, optionally filtered by entity.
// Rows that fail validation are skipped, not fatal.
func (r *Repo) Chunks(ctx context.Context, entity string) ([]domain.Chunk, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if entity != "" {
		rows, err = r.db.Query(ctx, selectClaimsByEntity, entity)
	} else {
		rows, err = r.db.Query(ctx, selectClaims)
	}
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var row claimRow
		if err := rows.Scan(&row.ID, &row.ClaimType, &row.ClaimText, &row.Entity, &row.Embedding); err != nil {
			return nil, fmt.Errorf("scan claim row: %w", err)
		}
		chunk, err := row.toChunk()
		if err != nil {
			r.logger.Warn("Skipping invalid claim row", zap.Int64("id", row.ID), zap.Error(err))
			continue
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}

	return chunks, nil
}
