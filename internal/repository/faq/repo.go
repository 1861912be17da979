// Package faq loads FAQ entries from Postgres as knowledge chunks.
package faq

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// querier is the consumer interface for FAQ queries (ISP).
// *pgxpool.Pool satisfies it.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repo implements usecase/knowledge.ChunkSource over the faqs table.
type Repo struct {
	db     querier
	logger *zap.Logger
}

// New creates a FAQ repository.
func New(db querier, logger *zap.Logger) *Repo {
	return &Repo{db: db, logger: logger}
}

const selectFAQs = `
SELECT id, question, answer, category, embedding
FROM faqs
ORDER BY id`

const selectFAQsByCategory = `
SELECT id, question, answer, category, embedding
FROM faqs
WHERE category = $1
ORDER BY id`

// Chunks returns all FAQ entries as chunks. A non-empty entity narrows the
// result to one category. Rows that fail validation are skipped, not fatal.
func (r *Repo) Chunks(ctx context.Context, entity string) ([]domain.Chunk, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if entity != "" {
		rows, err = r.db.Query(ctx, selectFAQsByCategory, entity)
	} else {
		rows, err = r.db.Query(ctx, selectFAQs)
	}
	if err != nil {
		return nil, fmt.Errorf("query faqs: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var row faqRow
		if err := rows.Scan(&row.ID, &row.Question, &row.Answer, &row.Category, &row.Embedding); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		chunk, err := row.toChunk()
		if err != nil {
			r.logger.Warn("Skipping invalid FAQ row", zap.Int64("id", row.ID), zap.Error(err))
			continue
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faqs: %w", err)
	}

	return chunks, nil
}
