package generation

import (
	"context"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// Completer produces a chat completion from a system and user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (domain.CompletionResult, error)
}
