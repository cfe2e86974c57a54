package httpadapter

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddlewarePreservesClientID(t *testing.T) {
	var seen string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/documents", nil)
	req.Header.Set(requestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "client-supplied-id" {
		t.Fatalf("context request id = %q", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "client-supplied-id" {
		t.Fatalf("response header request id = %q", got)
	}
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a generated request id header")
	}
}

func TestLevelForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   slog.Level
	}{
		{http.StatusOK, slog.LevelInfo},
		{http.StatusAccepted, slog.LevelInfo},
		{http.StatusNotFound, slog.LevelWarn},
		{http.StatusTooManyRequests, slog.LevelWarn},
		{http.StatusInternalServerError, slog.LevelError},
		{http.StatusServiceUnavailable, slog.LevelError},
	}
	for _, tc := range cases {
		if got := levelForStatus(tc.status); got != tc.want {
			t.Errorf("levelForStatus(%d) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
