package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tripshare/tripshare/internal/testutil"
)

func TestSecurityHeaders_Apply(t *testing.T) {
	tests := []struct {
		name     string
		secure   bool
		path     string
		expected map[string]string
		absent   []string
	}{
		{
			name: "api over http",
			path: "/api/trips",
			expected: map[string]string{
				"X-Frame-Options":         "DENY",
				"X-Content-Type-Options":  "nosniff",
				"Referrer-Policy":         "no-referrer",
				"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
				"Cache-Control":           "no-store",
			},
			absent: []string{"Strict-Transport-Security"},
		},
		{
			name:   "health over https",
			secure: true,
			path:   "/health",
			expected: map[string]string{
				"X-Frame-Options":           "DENY",
				"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
			},
			absent: []string{"Cache-Control"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewSecurityHeaders(tt.secure).Apply(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			for header, want := range tt.expected {
				testutil.AssertHeader(t, rr, header, want)
			}
			for _, header := range tt.absent {
				if got := rr.Header().Get(header); got != "" {
					t.Errorf("%s: expected unset, got %q", header, got)
				}
			}
		})
	}
}
