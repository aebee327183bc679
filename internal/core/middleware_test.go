package core

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"huntcast/internal/config"
	"huntcast/internal/observability"
	"huntcast/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv, err := NewServer(&config.Config{}, logger, observability.New("huntcast_test"))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestRecoverer(t *testing.T) {
	srv := newTestServer(t)

	handler := srv.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(types.WithRequestID(req.Context(), "req-panic"))

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}

	var body APIErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("panic response is not valid JSON: %v", err)
	}
	if body.Error.Code != string(types.ErrCodeInternalUnexpected) {
		t.Errorf("code: got %q", body.Error.Code)
	}
	if body.Error.RequestID != "req-panic" {
		t.Errorf("request id: got %q", body.Error.RequestID)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("panic value leaked to the client")
	}
}

func TestRequestIDMiddleware_GeneratesAndEchoes(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a generated request ID in context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("response header %q does not match context value %q", got, seen)
	}
}

func TestRequestIDMiddleware_ReusesIncomingHeader(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	handler.ServeHTTP(rec, req)

	if seen != "client-supplied" {
		t.Errorf("context request ID: got %q", seen)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Errorf("echoed header: got %q", got)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	srv := newTestServer(t)

	handler := srv.SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options: got %q", got)
	}
}

func TestContextTimeoutMiddleware(t *testing.T) {
	var deadlineSet bool
	handler := ContextTimeoutMiddleware(defaultRequestTimeout)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadlineSet = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !deadlineSet {
		t.Error("expected a deadline on the request context")
	}
}

func TestResponseCapture_DefaultsTo200OnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	rc := &responseCapture{ResponseWriter: rec}

	if _, err := rc.Write([]byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rc.statusCode != http.StatusOK {
		t.Errorf("status: got %d", rc.statusCode)
	}
}

func TestResponseCapture_FirstWriteHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rc := &responseCapture{ResponseWriter: rec}

	rc.WriteHeader(http.StatusTeapot)
	rc.WriteHeader(http.StatusOK)

	if rc.statusCode != http.StatusTeapot {
		t.Errorf("status: got %d, want first written code", rc.statusCode)
	}
}

func TestMountRoutes_FullChain(t *testing.T) {
	srv := newTestServer(t)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
			JSON(w, req, http.StatusOK, APIResponse{Data: "pong"})
		})
	})
	srv.MountRoutes()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected request ID header from chain")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers from chain")
	}
}

func TestEscapeJSON(t *testing.T) {
	in := "a\"b\\c\nd"
	out := escapeJSON(in)

	var decoded string
	if err := json.Unmarshal([]byte(`"`+out+`"`), &decoded); err != nil {
		t.Fatalf("escaped value is not a valid JSON string: %v", err)
	}
	if decoded != in {
		t.Errorf("round trip: got %q, want %q", decoded, in)
	}
}
