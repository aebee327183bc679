package core

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func performHealthCheck(t *testing.T, probes []HealthProbe) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()

	srv := newTestServer(t)
	srv.HealthProbes = probes

	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return rec, body
}

func TestHandleHealth_NoProbes(t *testing.T) {
	rec, body := performHealthCheck(t, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	if body.Status != "healthy" {
		t.Errorf("body status: got %q", body.Status)
	}
}

func TestHandleHealth_AllHealthy(t *testing.T) {
	probes := []HealthProbe{
		ProbeFunc{ProbeName: "database", Fn: func(ctx context.Context) error { return nil }},
		ProbeFunc{ProbeName: "weather", Fn: func(ctx context.Context) error { return nil }},
	}

	rec, body := performHealthCheck(t, probes)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	if len(body.Components) != 2 {
		t.Fatalf("components: got %d", len(body.Components))
	}
	for name, comp := range body.Components {
		if comp.Status != "healthy" {
			t.Errorf("component %s: got %q", name, comp.Status)
		}
	}
}

func TestHandleHealth_OneFailing(t *testing.T) {
	probes := []HealthProbe{
		ProbeFunc{ProbeName: "database", Fn: func(ctx context.Context) error { return errors.New("connection refused") }},
		ProbeFunc{ProbeName: "weather", Fn: func(ctx context.Context) error { return nil }},
	}

	rec, body := performHealthCheck(t, probes)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
	if body.Status != "unhealthy" {
		t.Errorf("body status: got %q", body.Status)
	}
	if body.Components["database"].Status != "unhealthy" {
		t.Error("database component should be unhealthy")
	}
	if body.Components["database"].Message != "connection refused" {
		t.Errorf("database message: got %q", body.Components["database"].Message)
	}
	if body.Components["weather"].Status != "healthy" {
		t.Error("weather component should stay healthy")
	}
}

func TestHandleHealth_PanickingProbe(t *testing.T) {
	probes := []HealthProbe{
		ProbeFunc{ProbeName: "flaky", Fn: func(ctx context.Context) error { panic("probe blew up") }},
	}

	rec, body := performHealthCheck(t, probes)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
	if body.Components["flaky"].Status != "unhealthy" {
		t.Error("panicking probe should report unhealthy")
	}
}
