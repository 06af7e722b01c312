// Package web serves the credential form and the dashboard as HTML pages.
//
// The server is a single-user local front end: it holds one form
// controller and one dashboard model, exactly like a browser tab would.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authdash/internal/client/authform"
	"github.com/dmitrijs2005/authdash/internal/client/dashboard"
	"github.com/dmitrijs2005/authdash/internal/client/nav"
	"github.com/dmitrijs2005/authdash/internal/client/strength"
	"github.com/dmitrijs2005/authdash/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	form   *authform.Controller
	dash   *dashboard.Model
	logger logging.Logger
	tmpl   *template.Template
}

func New(form *authform.Controller, dash *dashboard.Model, logger logging.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{form: form, dash: dash, logger: logger.With("module", "web"), tmpl: tmpl}, nil
}

type page struct {
	Brand nav.Link
	Links []nav.Link
}

func newPage() page {
	return page{Brand: nav.Brand, Links: nav.Links()}
}

type formPage struct {
	page
	State  authform.State
	Fields map[string]string
	Notice string
	Rules  []strength.Rule

	// ShowRules lists the password rules after a rejected attempt.
	ShowRules bool
}

type dashboardPage struct {
	page
	View      dashboard.View
	Heading   string
	LoggedOut string
	Error     string
}

// Router returns the HTTP routes of the UI.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK\n"))
	}).Methods(http.MethodGet)

	r.HandleFunc(nav.PathLogin, s.showForm).Methods(http.MethodGet)
	r.HandleFunc(nav.PathLogin, s.submitForm).Methods(http.MethodPost)
	r.HandleFunc("/toggle", s.toggleMode).Methods(http.MethodPost)
	r.HandleFunc("/retry", s.retryProfile).Methods(http.MethodPost)
	r.HandleFunc(nav.PathDashboard, s.showDashboard).Methods(http.MethodGet)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/api/me", s.currentUser).Methods(http.MethodGet)

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "request", "method", r.Method, "path", r.URL.Path,
			"request_id", id, "duration", time.Since(start))
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(r.Context(), "render failed", "template", name, "error", err)
	}
}
