package ragpipe

import "github.com/kailas-cloud/ragpipe/internal/domain"

// Sentinel errors surfaced by Client operations. Match with errors.Is.
var (
	// ErrMissingCredentials: provider credentials absent.
	ErrMissingCredentials = domain.ErrMissingCredentials
	// ErrEmbeddingProviderError: the embedding provider failed.
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	// ErrCompletionProviderError: the completion provider failed.
	ErrCompletionProviderError = domain.ErrCompletionProviderError
	// ErrRateLimited: the provider rejected the call with a rate limit.
	ErrRateLimited = domain.ErrRateLimited
	// ErrEmptyQuery: the query was blank.
	ErrEmptyQuery = domain.ErrEmptyQuery
)
