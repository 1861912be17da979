package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain/answer"
	"github.com/kailas-cloud/ragpipe/internal/domain/report"
	healthuc "github.com/kailas-cloud/ragpipe/internal/usecase/health"
)

type mockAsk struct {
	answer answer.Answer
	err    error
}

func (m *mockAsk) Ask(_ context.Context, _, _ string) (answer.Answer, error) {
	return m.answer, m.err
}

type mockQuality struct {
	report report.Report
	err    error
}

func (m *mockQuality) Run(_ context.Context, _ string, _ []string) (report.Report, error) {
	return m.report, m.err
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	return m.report
}

func newTestServer(t *testing.T, ask AskService, quality QualityService, health HealthService) http.Handler {
	t.Helper()
	if health == nil {
		health = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	s := NewServer(ask, quality, health, zap.NewNop())
	r := gochi.NewRouter()
	s.Mount(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
