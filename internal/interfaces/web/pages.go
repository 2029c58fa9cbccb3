package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/observability"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome       = "home.html"
	pageWelcome    = "welcome.html"
	pageOnboarding = "onboarding.html"
	pageCompleted  = "completed.html"
	pageNotFound   = "notfound.html"
	pageError      = "error.html"
)

var pageFiles = []string{pageHome, pageWelcome, pageOnboarding, pageCompleted, pageNotFound, pageError}

type Options struct {
	Metrics *observability.PortalMetrics
	Logger  *logging.Logger
	// CSRFKey enables form protection when set. It must be 32 bytes.
	CSRFKey         []byte
	CSRFSecure      bool
	PreseasonNotice string
	UploadMaxBytes  int64
}

// Pages serves the prospect facing HTML pages.
type Pages struct {
	portal    *usecase.PortalService
	wizard    *usecase.WizardService
	metrics   *observability.PortalMetrics
	logger    *logging.Logger
	templates map[string]*template.Template
	opts      Options
}

func NewPages(portal *usecase.PortalService, wizard *usecase.WizardService, opts Options) (*Pages, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = 10 << 20
	}
	if len(opts.CSRFKey) > 0 && len(opts.CSRFKey) != 32 {
		return nil, fmt.Errorf("csrf key must be 32 bytes, got %d", len(opts.CSRFKey))
	}

	templates := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		tpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tpl
	}

	return &Pages{
		portal:    portal,
		wizard:    wizard,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		templates: templates,
		opts:      opts,
	}, nil
}

// Handler routes the page paths. Unknown paths render the not-found page.
func (p *Pages) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", p.Home)
	mux.HandleFunc("GET /{prospectID}", p.Welcome)
	mux.HandleFunc("GET /{prospectID}/onboarding", p.Onboarding)
	mux.HandleFunc("POST /{prospectID}/onboarding", p.SubmitOnboarding)
	mux.HandleFunc("/", p.NotFound)

	var h http.Handler = mux
	if len(p.opts.CSRFKey) > 0 {
		protect := csrf.Protect(
			p.opts.CSRFKey,
			csrf.Secure(p.opts.CSRFSecure),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(p.forbidden)),
		)
		h = plaintextUnlessSecure(p.opts.CSRFSecure, protect(h))
	}
	return securityHeaders(p.limitForm(h))
}

// chrome is the shared header of the prospect pages.
type chrome struct {
	Title           string
	ProspectID      string
	FirstName       string
	FullName        string
	TrialRange      string
	ShowNav         bool
	ActiveTab       string
	Completed       bool
	PreseasonNotice string
	CSRFField       template.HTML
}

func (p *Pages) chromeFor(r *http.Request, item prospect.Prospect, title, tab string) chrome {
	return chrome{
		Title:           title,
		ProspectID:      item.ID,
		FirstName:       item.FirstName,
		FullName:        item.FullName(),
		TrialRange:      item.TrialRangeLabel(),
		ShowNav:         item.ShowsOnboarding(),
		ActiveTab:       tab,
		Completed:       item.Completed(),
		PreseasonNotice: p.opts.PreseasonNotice,
		CSRFField:       csrfField(r),
	}
}

func csrfField(r *http.Request) template.HTML {
	if csrf.Token(r) == "" {
		return ""
	}
	return csrf.TemplateField(r)
}

func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "web.Pages.Home")
	defer span.End()

	p.render(w, r, http.StatusOK, pageHome, chrome{Title: "ITP Trial Onboarding"})
}

type welcomeView struct {
	chrome
	Page     usecase.WelcomePage
	ListView bool
}

func (p *Pages) Welcome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Pages.Welcome")
	defer span.End()

	page, err := p.portal.Welcome(ctx, r.PathValue("prospectID"))
	if err != nil {
		p.fail(w, r, "load welcome page failed", err)
		return
	}

	view := welcomeView{
		chrome:   p.chromeFor(r, page.Prospect, "Welcome", "info"),
		Page:     page,
		ListView: r.URL.Query().Get("view") == "list",
	}
	if page.PreseasonNotice != "" {
		view.PreseasonNotice = page.PreseasonNotice
	}
	p.render(w, r, http.StatusOK, pageWelcome, view)
}

func (p *Pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, pageNotFound, chrome{Title: "Not found"})
}

type errorView struct {
	chrome
	Message string
}

func (p *Pages) forbidden(w http.ResponseWriter, r *http.Request) {
	p.logger.WarnContext(r.Context(), "csrf check failed", "http_path", r.URL.Path, "reason", csrf.FailureReason(r))
	p.render(w, r, http.StatusForbidden, pageError, errorView{
		chrome:  chrome{Title: "Session expired"},
		Message: "Your session expired. Please reload the page and try again.",
	})
}

// fail renders the not-found page for unknown prospects and a generic error
// page otherwise.
func (p *Pages) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, usecase.ErrNotFound) {
		p.NotFound(w, r)
		return
	}

	status := http.StatusInternalServerError
	message := "Something went wrong. Please try again."
	if errors.Is(err, usecase.ErrDependencyUnavailable) {
		status = http.StatusServiceUnavailable
		message = usecase.PublicMessage(err)
	}
	p.logger.ErrorContext(r.Context(), msg, "http_path", r.URL.Path, "error", err)
	p.render(w, r, status, pageError, errorView{chrome: chrome{Title: "Error"}, Message: message})
}

// render executes into a pooled buffer so a template failure never leaves a
// half-written page.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tpl, ok := p.templates[name]
	if !ok {
		p.logger.ErrorContext(r.Context(), "unknown page template", "template", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tpl.ExecuteTemplate(buf, "layout", data); err != nil {
		p.logger.ErrorContext(r.Context(), "render page failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func (p *Pages) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if statusFor(err) >= http.StatusInternalServerError {
		p.logger.ErrorContext(ctx, msg, args...)
		return
	}
	p.logger.WarnContext(ctx, msg, args...)
}

var templateFuncs = template.FuncMap{
	"px": func(v float64) string {
		return fmt.Sprintf("%.1fpx", v)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.4f%%", v)
	},
	"add": func(a, b int) int { return a + b },
	"deref": func(b *bool) bool {
		return b != nil && *b
	},
}
