package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSPolicy_AllowOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{name: "wildcard", allowed: []string{"*"}, origin: "https://itp.fc-koeln.de", want: "*"},
		{name: "listed origin", allowed: []string{" https://itp.fc-koeln.de ", ""}, origin: "https://itp.fc-koeln.de", want: "https://itp.fc-koeln.de"},
		{name: "unlisted origin", allowed: []string{"https://itp.fc-koeln.de"}, origin: "https://evil.example.com", want: ""},
		{name: "nothing configured", allowed: nil, origin: "https://itp.fc-koeln.de", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, newCORSPolicy(tc.allowed).allowOrigin(tc.origin))
		})
	}
}

func TestCORS_Headers(t *testing.T) {
	reached := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached++
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   string
		wantNext   bool
	}{
		{
			name:       "specific origin varies on Origin",
			allowed:    []string{"https://itp.fc-koeln.de"},
			method:     http.MethodPost,
			origin:     "https://itp.fc-koeln.de",
			wantStatus: http.StatusOK,
			wantOrigin: "https://itp.fc-koeln.de",
			wantVary:   "Origin",
			wantNext:   true,
		},
		{
			name:       "preflight stops before the handler",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://itp.fc-koeln.de",
			wantStatus: http.StatusNoContent,
			wantOrigin: "*",
		},
		{
			name:       "disallowed origin still reaches handler",
			allowed:    []string{"https://itp.fc-koeln.de"},
			method:     http.MethodGet,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reached = 0
			req := httptest.NewRequest(tc.method, "/api/onboarding", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tc.allowed, next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.wantVary, rec.Header().Get("Vary"))
			assert.Equal(t, tc.wantNext, reached == 1)
		})
	}
}
