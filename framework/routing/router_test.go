package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-beans/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/beans", okHandler)
	r.Post("/beans/{id}/instantiate", okHandler)

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/beans"},
		{http.MethodPost, "/beans/petStore/instantiate"},
	} {
		if rr := do(t, r, tt.method, tt.path); rr.Code != http.StatusOK {
			t.Errorf("%s %s: got %d want 200", tt.method, tt.path, rr.Code)
		}
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := routing.New(nil)
	r.Get("/beans", okHandler)

	if rr := do(t, r, http.MethodPost, "/beans"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /beans: got %d want 405", rr.Code)
	}
}

// ── 404 for unregistered routes ──────────────────────────────────────────────

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

// ── Prefix ───────────────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/beans", okHandler)
	})

	rr := do(t, r, http.MethodGet, "/api/v1/beans")
	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/v1/beans: got %d want 200", rr.Code)
	}

	// Root must 404
	rr2 := do(t, r, http.MethodGet, "/beans")
	if rr2.Code != http.StatusNotFound {
		t.Errorf("GET /beans: expected 404, got %d", rr2.Code)
	}
}

// ── Middleware ────────────────────────────────────────────────────────────────

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(nil)
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	if rr := do(t, r, http.MethodGet, "/boom"); rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}

func TestRouter_AccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := routing.New(zap.New(core))
	r.Get("/beans", okHandler)

	do(t, r, http.MethodGet, "/beans")

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("access log entries: got %d want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/beans" {
		t.Errorf("path: got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status: got %v (%T)", fields["status"], fields["status"])
	}
	if fields["request_id"] == "" {
		t.Error("request_id should be set")
	}
}

// ── http.Handler ─────────────────────────────────────────────────────────────

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	r.Get("/ping", okHandler)
	var _ http.Handler = r
}
