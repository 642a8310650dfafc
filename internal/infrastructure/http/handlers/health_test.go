package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func serveReadiness(t *testing.T, h *HealthDependenciesHandler) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks []DependencyCheck
		code   int
		status string
	}{
		{"all up", []DependencyCheck{{"postgres", ok}, {"mongodb", ok}, {"redis", ok}}, http.StatusOK, "ok"},
		{"one down", []DependencyCheck{{"postgres", ok}, {"mongodb", down}, {"redis", ok}}, http.StatusServiceUnavailable, "degraded"},
		{"no checks", nil, http.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := serveReadiness(t, NewHealthDependenciesHandler(tt.checks...))

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if resp.Status != tt.status || len(resp.Dependencies) != len(tt.checks) {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestReadiness_SortedWithErrors(t *testing.T) {
	h := NewHealthDependenciesHandler(
		DependencyCheck{"redis", func(context.Context) error { return nil }},
		DependencyCheck{"mongodb", func(context.Context) error { return errors.New("no primary") }},
		DependencyCheck{"postgres", func(context.Context) error { return nil }},
	)

	_, resp := serveReadiness(t, h)

	want := []string{"mongodb", "postgres", "redis"}
	for i, dep := range resp.Dependencies {
		if dep.Name != want[i] {
			t.Fatalf("expected %s at %d, got %s", want[i], i, dep.Name)
		}
	}
	if resp.Dependencies[0].Error != "no primary" || resp.Dependencies[1].Error != "" {
		t.Fatalf("unexpected errors: %+v", resp.Dependencies)
	}
}

func TestReadiness_SlowCheckHitsDeadline(t *testing.T) {
	h := NewHealthDependenciesHandler(DependencyCheck{"postgres", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	h.timeout = 20 * time.Millisecond

	rec, resp := serveReadiness(t, h)

	if rec.Code != http.StatusServiceUnavailable || resp.Dependencies[0].Status != "unhealthy" {
		t.Fatalf("expected unhealthy postgres, got %d %+v", rec.Code, resp)
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
