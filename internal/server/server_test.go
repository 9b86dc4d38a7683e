package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-energy/pkg/logger"
)

func TestRoutes(t *testing.T) {
	t.Parallel()

	var hits int
	s := NewServer("0", func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusAccepted)
	}, logger.NewNop())

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("health: %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhook/stripe", nil))
	if rr.Code != http.StatusAccepted || hits != 1 {
		t.Fatalf("webhook: %d, hits %d", rr.Code, hits)
	}
}

func TestWebhookDisabled(t *testing.T) {
	t.Parallel()

	s := NewServer("0", nil, logger.NewNop())
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/webhook/stripe", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
