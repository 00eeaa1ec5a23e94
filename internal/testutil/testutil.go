// Package testutil holds helpers shared by the HTTP-layer tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

// FixedNow is the instant tests pin clocks to.
var FixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// ClockAt returns a clock frozen at FixedNow plus offset.
func ClockAt(offset time.Duration) func() time.Time {
	return func() time.Time { return FixedNow.Add(offset) }
}

// AssertStatusCode checks if the response has the expected status code.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertHeader checks a single response header value.
func AssertHeader(t *testing.T, rr *httptest.ResponseRecorder, name, expected string) {
	t.Helper()
	if got := rr.Header().Get(name); got != expected {
		t.Errorf("%s: expected %q, got %q", name, expected, got)
	}
}

// AssertJSONError checks for an {"error": message} body.
func AssertJSONError(t *testing.T, rr *httptest.ResponseRecorder, message string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse JSON error %q: %v", rr.Body.String(), err)
	}
	if body.Error != message {
		t.Errorf("expected error %q, got %q", message, body.Error)
	}
}

// NewJSONRequest builds a request whose body is data encoded as JSON.
func NewJSONRequest(t *testing.T, method, path string, data interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// RandomEmail generates a unique address for tests.
func RandomEmail() string {
	return uuid.New().String()[:8] + "@test.example"
}
