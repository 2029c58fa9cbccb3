package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogging writes one record per request. Health-check traffic is logged at
// debug and server errors at error level.
func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		args := []any{
			"http_method", r.Method,
			"http_route", routeName(r.URL.Path),
			"http_status", status,
			"response_bytes", rec.bytes,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		}
		switch {
		case isHealthCheckPath(r.URL.Path):
			logger.DebugContext(ctx, "http_request", args...)
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(ctx, "http_request", args...)
		default:
			logger.InfoContext(ctx, "http_request", args...)
		}
	})
}

// RequestTracing names server spans by route so prospect links do not turn
// into one span name per prospect.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "itp-onboarding-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeName(r.URL.Path)
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !isHealthCheckPath(r.URL.Path)
		}),
	)
}

func isHealthCheckPath(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz", "/metrics", "/favicon.ico":
		return true
	default:
		return false
	}
}

// routeName replaces prospect UUID path segments with {prospectID}.
func routeName(path string) string {
	segments := strings.Split(strings.TrimSpace(path), "/")
	for i, segment := range segments {
		if _, err := uuid.Parse(segment); err == nil && len(segment) == 36 {
			segments[i] = "{prospectID}"
		}
	}
	return strings.Join(segments, "/")
}

type corsPolicy struct {
	any     bool
	origins map[string]bool
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	policy := corsPolicy{origins: make(map[string]bool, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			policy.any = true
		default:
			policy.origins[origin] = true
		}
	}
	return policy
}

// allowOrigin returns the Access-Control-Allow-Origin value, or "" when the
// origin is not allowed.
func (p corsPolicy) allowOrigin(origin string) string {
	switch {
	case p.any:
		return "*"
	case p.origins[origin]:
		return origin
	default:
		return ""
	}
}

// CORS admits the configured origins for the JSON API. Preflight requests are
// answered without reaching the handlers.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if allowed := policy.allowOrigin(origin); allowed != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type,Accept,X-CSRF-Token")
			h.Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
