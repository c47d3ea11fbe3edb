package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/service"
)

func newBareHandler() *Handler {
	return &Handler{
		services: &service.Services{},
		logger:   logger.Nop(),
	}
}

func TestWithTraceID_GeneratesWhenMissing(t *testing.T) {
	h := newBareHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rr, req)

	if rr.Header().Get(traceIDHeader) == "" {
		t.Fatal("expected generated trace ID in response header")
	}
}

func TestWithTraceID_ReusesIncoming(t *testing.T) {
	h := newBareHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "trace-from-client")
	rr := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rr, req)

	if got := rr.Header().Get(traceIDHeader); got != "trace-from-client" {
		t.Fatalf("expected incoming trace ID to be reused, got %q", got)
	}
}
