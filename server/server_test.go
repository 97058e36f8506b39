package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testMux() http.Handler {
	return NewMux(func() Status {
		return Status{
			Channel:         "kitchen",
			Uptime:          "1h2m3s",
			Commands:        33,
			AIEnabled:       true,
			AutoPostEnabled: false,
		}
	})
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("healthz body = %q", rec.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	var got Status
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("status decode: %v", err)
	}
	if got.Channel != "kitchen" || got.Commands != 33 || !got.AIEnabled || got.AutoPostEnabled {
		t.Errorf("status = %+v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
}

func TestCorrelationIDInjected(t *testing.T) {
	rec := httptest.NewRecorder()
	testMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Header().Get("X-Correlation-ID") == "" {
		t.Errorf("missing generated X-Correlation-ID header")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	testMux().ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Correlation-ID"); got != "corr-123" {
		t.Errorf("X-Correlation-ID = %q, want corr-123", got)
	}
}
