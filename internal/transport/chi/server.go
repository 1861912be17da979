// Package chi exposes the pipeline over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
	healthuc "github.com/kailas-cloud/ragpipe/internal/usecase/health"
)

// errorCode identifies an error class in API responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeRateLimited      errorCode = "rate_limited"
	codeProviderError    errorCode = "provider_error"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the usecase services into HTTP handlers.
type Server struct {
	ask           AskService
	quality       QualityService
	health        HealthService
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(ask AskService, quality QualityService, health HealthService, logger *zap.Logger) *Server {
	s := &Server{
		ask:     ask,
		quality: quality,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrCompletionProviderError, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrMissingCredentials, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Mount registers the API routes on a router. Middleware stays with the caller.
func (s *Server) Mount(r chi.Router) {
	r.Post("/v1/answers", s.CreateAnswer)
	r.Post("/v1/quality-runs", s.CreateQualityRun)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type answerRequest struct {
	Query  string `json:"query"`
	Entity string `json:"entity,omitempty"`
}

type answerResponse struct {
	Query      string   `json:"query"`
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
	TokensUsed int      `json:"tokens_used"`
}

// CreateAnswer handles POST /v1/answers.
func (s *Server) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ans, err := s.ask.Ask(r.Context(), req.Entity, req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := ans.Sources()
	if sources == nil {
		sources = []string{}
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Query:      ans.Query(),
		Answer:     ans.Text(),
		Sources:    sources,
		Confidence: ans.Confidence(),
		TokensUsed: ans.TokensUsed(),
	})
}

type qualityRunRequest struct {
	Queries []string `json:"queries"`
	Entity  string   `json:"entity,omitempty"`
}

type qualityOutcome struct {
	Query  string `json:"query"`
	Passed bool   `json:"passed"`
	Answer string `json:"answer"`
}

type qualityRunResponse struct {
	ID       string           `json:"id"`
	Score    float64          `json:"score"`
	Total    int              `json:"total"`
	Passed   int              `json:"passed"`
	Outcomes []qualityOutcome `json:"outcomes"`
}

// CreateQualityRun handles POST /v1/quality-runs.
func (s *Server) CreateQualityRun(w http.ResponseWriter, r *http.Request) {
	var req qualityRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rep, err := s.quality.Run(r.Context(), req.Entity, req.Queries)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	outcomes := rep.Outcomes()
	resp := qualityRunResponse{
		ID:       uuid.NewString(),
		Score:    rep.Score(),
		Total:    len(outcomes),
		Outcomes: make([]qualityOutcome, len(outcomes)),
	}
	for i := range outcomes {
		o := &outcomes[i]
		if o.Passed() {
			resp.Passed++
		}
		resp.Outcomes[i] = qualityOutcome{
			Query:  o.Query(),
			Passed: o.Passed(),
			Answer: o.Answer(),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrRateLimited,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
		domain.ErrMissingCredentials,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
