package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
)

const (
	// Leaves room for the form fields around the document files.
	formOverheadBytes  = 1 << 20
	multipartMaxMemory = 4 << 20
	maxFilesPerStep    = 3
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// plaintextUnlessSecure marks requests as plain HTTP for local development so
// the origin checks do not expect TLS.
func plaintextUnlessSecure(secure bool, next http.Handler) http.Handler {
	if secure {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// limitForm caps and parses multipart bodies before the CSRF check reads the
// token from them. An oversized body is answered here.
func (p *Pages) limitForm(next http.Handler) http.Handler {
	limit := maxFilesPerStep*p.opts.UploadMaxBytes + formOverheadBytes
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				p.render(w, r, http.StatusRequestEntityTooLarge, pageError, errorView{
					chrome:  chrome{Title: "Upload too large"},
					Message: fmt.Sprintf("Each file must be under %d MB. Please go back and choose a smaller file.", p.opts.UploadMaxBytes>>20),
				})
				return
			}
			p.render(w, r, http.StatusBadRequest, pageError, errorView{
				chrome:  chrome{Title: "Invalid form"},
				Message: "The form could not be read. Please reload the page and try again.",
			})
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		next.ServeHTTP(w, r)
	})
}
