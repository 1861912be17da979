// Package answer holds the generation outcome value object.
package answer

// Answer is the result of answering one query against the knowledge pool.
type Answer struct {
	query      string
	text       string
	sources    []string // source labels in retrieval rank order
	confidence float64  // [0, 1], see generation.Confidence
	tokensUsed int      // 0 when the provider reported no usage
}

// New creates an answer.
func New(query, text string, sources []string, confidence float64, tokensUsed int) Answer {
	return Answer{
		query: query, text: text, sources: sources,
		confidence: confidence, tokensUsed: tokensUsed,
	}
}

// Query returns the input query.
func (a *Answer) Query() string { return a.query }

// Text returns the generated answer text.
func (a *Answer) Text() string { return a.text }

// Sources returns the source labels included in the prompt context,
// preserving retrieval rank order.
func (a *Answer) Sources() []string { return a.sources }

// Confidence returns the confidence score.
func (a *Answer) Confidence() float64 { return a.confidence }

// TokensUsed returns the token count reported by the completion call.
func (a *Answer) TokensUsed() int { return a.tokensUsed }
