// Package report holds the quality run aggregate.
package report

// Outcome is the graded result of one query in a quality run.
type Outcome struct {
	query  string
	passed bool
	answer string
}

// NewOutcome creates a per-query outcome.
func NewOutcome(query string, passed bool, answer string) Outcome {
	return Outcome{query: query, passed: passed, answer: answer}
}

// Query returns the input query.
func (o *Outcome) Query() string { return o.query }

// Passed reports whether the query cleared the quality gate.
func (o *Outcome) Passed() bool { return o.passed }

// Answer returns the generated answer, or the failure reason.
func (o *Outcome) Answer() string { return o.answer }

// Report aggregates a quality run over a batch of queries.
type Report struct {
	score    float64
	outcomes []Outcome
}

// New builds a report from per-query outcomes, in input order.
// Score is passed/total; an empty batch scores 0 rather than NaN.
func New(outcomes []Outcome) Report {
	if len(outcomes) == 0 {
		return Report{outcomes: outcomes}
	}
	passed := 0
	for i := range outcomes {
		if outcomes[i].passed {
			passed++
		}
	}
	return Report{
		score:    float64(passed) / float64(len(outcomes)),
		outcomes: outcomes,
	}
}

// Score returns the fraction of queries that passed, in [0, 1].
func (r *Report) Score() float64 { return r.score }

// Outcomes returns the per-query outcomes, same order as the input queries.
func (r *Report) Outcomes() []Outcome { return r.outcomes }
