package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	rep := svc.Check(context.Background())
	if rep.Status != Healthy {
		t.Errorf("Status = %q, want %q", rep.Status, Healthy)
	}
	if rep.Checks["database"] != CheckOK || rep.Checks["provider"] != CheckOK {
		t.Errorf("Checks = %v", rep.Checks)
	}
}

func TestCheck_DegradedOnProviderFailure(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("timeout")})

	rep := svc.Check(context.Background())
	if rep.Status != Degraded {
		t.Errorf("Status = %q, want %q", rep.Status, Degraded)
	}
	if rep.Checks["provider"] != CheckError {
		t.Errorf("provider check = %q, want %q", rep.Checks["provider"], CheckError)
	}
}

func TestCheck_NilComponentsSkipped(t *testing.T) {
	svc := New(nil, &mockChecker{})

	rep := svc.Check(context.Background())
	if _, ok := rep.Checks["database"]; ok {
		t.Error("nil db must not be checked")
	}
	if rep.Status != Healthy {
		t.Errorf("Status = %q, want %q", rep.Status, Healthy)
	}
}
