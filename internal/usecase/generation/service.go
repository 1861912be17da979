// Package generation assembles retrieved context into a prompt and produces
// a grounded answer via a completion provider.
package generation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	domret "github.com/kailas-cloud/ragpipe/internal/domain/retrieval"
)

const (
	// NoRelevantContent is the answer when retrieval yields zero chunks.
	// No completion call is made in that case.
	NoRelevantContent = "No relevant content found to answer this question."
	// GenerationFallback is the answer when the provider returns no text.
	GenerationFallback = "Unable to generate an answer."
)

// systemInstruction constrains the model to the supplied context.
const systemInstruction = "You are a knowledge assistant. " +
	"Answer the question using only the context provided below. " +
	"If the context does not contain enough information to answer, " +
	"say that the available information is insufficient. " +
	"Do not invent facts that are not in the context."

// Service generates answers from retrieved context.
type Service struct {
	completer Completer
	counter   *TokenCounter
	window    int
	logger    *zap.Logger
}

// New creates a generation service.
func New(completer Completer, logger *zap.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// WithContextWindow enables the context window guard: trailing chunks that
// would push the prompt past windowTokens are dropped before the call.
// The top-ranked chunk is always kept.
func (s *Service) WithContextWindow(counter *TokenCounter, windowTokens int) *Service {
	if counter != nil && windowTokens > 0 {
		s.counter = counter
		s.window = windowTokens
	}
	return s
}

// Generate answers the query from the retrieved chunks, in rank order.
// Empty context is a defined terminal state, not an error: the sentinel answer
// is returned with zero confidence and no network call.
// Provider failures propagate wrapped; there is no automatic retry.
func (s *Service) Generate(
	ctx context.Context, query string, contextChunks []domret.Result,
) (answer.Answer, error) {
	if len(contextChunks) == 0 {
		return answer.New(query, NoRelevantContent, nil, 0, 0), nil
	}

	kept := s.fitToWindow(query, contextChunks)
	if dropped := len(contextChunks) - len(kept); dropped > 0 {
		s.logger.Debug("Trimmed context to fit window",
			zap.Int("dropped_chunks", dropped),
			zap.Int("window_tokens", s.window),
		)
	}

	system, sources := buildPrompt(kept)

	res, err := s.completer.Complete(ctx, system, query)
	if err != nil {
		return answer.Answer{}, fmt.Errorf("complete: %w", err)
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		s.logger.Warn("Completion returned no text", zap.String("query", query))
		text = GenerationFallback
	}

	conf := Confidence(len(kept), len(text))
	return answer.New(query, text, sources, conf, res.TotalTokens), nil
}

// buildPrompt concatenates chunk contents in rank order, each prefixed by its
// source label, and returns the system message plus the labels actually used.
func buildPrompt(results []domret.Result) (system string, sources []string) {
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\n\nContext:\n")

	sources = make([]string, 0, len(results))
	for i := range results {
		c := results[i].Chunk()
		b.WriteString("[")
		b.WriteString(c.Source)
		b.WriteString("]\n")
		b.WriteString(c.Content)
		b.WriteString("\n\n")
		sources = append(sources, c.Source)
	}
	return b.String(), sources
}

// fitToWindow drops trailing chunks whose cumulative token count would exceed
// the configured window. Disabled when no counter is configured.
func (s *Service) fitToWindow(query string, results []domret.Result) []domret.Result {
	if s.counter == nil {
		return results
	}

	budget := s.window - s.counter.Count(systemInstruction) - s.counter.Count(query)
	kept := make([]domret.Result, 0, len(results))
	used := 0
	for i := range results {
		c := results[i].Chunk()
		used += s.counter.Count(c.Source) + s.counter.Count(c.Content)
		if used > budget && len(kept) > 0 {
			break
		}
		kept = append(kept, results[i])
	}
	return kept
}
