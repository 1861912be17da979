package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// parseAPIError extracts a human-readable error from the API response and
// wraps it with the given provider sentinel for correct upstream mapping.
// HTTP 429 additionally wraps domain.ErrRateLimited.
func parseAPIError(op string, err error, wrap error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(op, reqErr.HTTPStatusCode, detailOrBody(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return statusError(op, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("%s request failed: %w", op, wrap)
}

func statusError(op string, status int, detail string, wrap error) error {
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%s API error %d: %s: %w: %w", op, status, detail, domain.ErrRateLimited, wrap)
	}
	return fmt.Errorf("%s API error %d: %s: %w", op, status, detail, wrap)
}

// detailOrBody extracts the "detail" field from a JSON error body, falling
// back to the raw body.
func detailOrBody(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return string(body)
}
