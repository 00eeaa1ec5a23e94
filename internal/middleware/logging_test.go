package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tripshare/tripshare/internal/logging"
)

func TestRequestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New().SetOutput(&buf)

	handler := NewRequestLogger(logger).Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"trip not found"}`))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/oauth/github/callback?code=secret", nil)
	req.Header.Set(requestIDHeader, "req-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get(requestIDHeader); got != "req-1" {
		t.Errorf("expected request id to be echoed, got %q", got)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Errorf("expected warn level for 404, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusNotFound) {
		t.Errorf("unexpected status %v", entry["status"])
	}
	if entry["size"] != float64(len(`{"error":"trip not found"}`)) {
		t.Errorf("unexpected size %v", entry["size"])
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("unexpected request id %v", entry["request_id"])
	}
	if bytes.Contains(buf.Bytes(), []byte("secret")) {
		t.Error("query string values must not be logged")
	}
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRequestLogger(logging.New().SetOutput(&buf)).Apply(okHandler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))

	if len(rr.Header().Get(requestIDHeader)) != 36 {
		t.Errorf("expected generated uuid, got %q", rr.Header().Get(requestIDHeader))
	}
}
