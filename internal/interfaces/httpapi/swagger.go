package httpapi

import (
	_ "embed"
	"net/http"
)

var (
	//go:embed openapi.yaml
	openAPISpec []byte
	//go:embed swagger.html
	swaggerPage []byte
)

// OpenAPI and SwaggerUI are only routed when SWAGGER_ENABLED is set.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	serveStatic(w, r, "application/yaml; charset=utf-8", openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	serveStatic(w, r, "text/html; charset=utf-8", swaggerPage)
}

func serveStatic(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	_, span := startSpan(r.Context(), "httpapi.Handler.serveStatic")
	defer span.End()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(body)
}
