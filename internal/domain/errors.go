package domain

import "errors"

var (
	// ErrMissingCredentials signals absent provider credentials or configuration.
	// Raised before any network call is attempted.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrRateLimited signals a provider rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmptyQuery signals a blank query string.
	ErrEmptyQuery = errors.New("empty query")
)
