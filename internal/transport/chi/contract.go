package chi

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	"github.com/kailas-cloud/ragpipe/internal/domain/report"
	healthuc "github.com/kailas-cloud/ragpipe/internal/usecase/health"
)

// AskService answers single queries.
type AskService interface {
	Ask(ctx context.Context, entity, query string) (answer.Answer, error)
}

// QualityService grades a batch of queries.
type QualityService interface {
	Run(ctx context.Context, entity string, queries []string) (report.Report, error)
}

// HealthService reports component health.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}
