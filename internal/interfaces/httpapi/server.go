package httpapi

import (
	"net/http"

	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

type RouterOptions struct {
	// Pages serves every path the API does not claim.
	Pages              http.Handler
	Metrics            http.Handler
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics, opts.SwaggerEnabled)
	registerOnboardingRoutes(mux, handler)
	if opts.Pages != nil {
		mux.Handle("/", opts.Pages)
	}

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerOnboardingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/onboarding", handler.SaveOnboarding)
	mux.HandleFunc("POST /api/onboarding/upload", handler.UploadDocument)
	mux.HandleFunc("GET /api/onboarding/templates/{type}", handler.DownloadTemplate)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "http_route", routeName(r.URL.Path))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
