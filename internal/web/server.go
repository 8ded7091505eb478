// Package web provides the HTTP server and handlers for the campgrounds web UI.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/campground"
	"github.com/jharden/campgrounds/internal/geocode"
	"github.com/jharden/campgrounds/internal/imagestore"
	"github.com/jharden/campgrounds/internal/logging"
	"github.com/jharden/campgrounds/internal/review"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server is the web UI HTTP server.
type Server struct {
	campgrounds *campground.Repository
	reviews     *review.Repository
	users       *auth.UserStore
	sessions    *auth.SessionStore
	geocoder    *geocode.Client
	images      *imagestore.Client
	templates   *template.Template
	router      chi.Router
}

// NewServer creates a web server with the given database and external
// collaborator clients.
func NewServer(db *sql.DB, geocoder *geocode.Client, images *imagestore.Client) (*Server, error) {
	funcMap := template.FuncMap{
		"stars": tmplStars,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		campgrounds: campground.NewRepository(db),
		reviews:     review.NewRepository(db),
		users:       auth.NewUserStore(db),
		sessions:    auth.NewSessionStore(db),
		geocoder:    geocoder,
		images:      images,
		templates:   tmpl,
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(logging.RequestLogger)
	r.Use(methodOverride)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(auth.CurrentUser(s.sessions, s.users))

		r.Get("/", s.handleHome)
		r.Get("/register", s.handleRegisterForm)
		r.Post("/register", s.handleRegister)
		r.Get("/login", s.handleLoginForm)
		r.Post("/login", s.handleLogin)

		r.Get("/campgrounds", s.handleIndex)
		r.Get("/campgrounds/{id}", s.handleShow)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireLogin(s.sessions))

			r.Get("/logout", s.handleLogout)
			r.Get("/campgrounds/new", s.handleNewForm)
			r.Post("/campgrounds", s.handleCreate)
			r.Post("/campgrounds/{id}/reviews", s.handleCreateReview)

			r.Group(func(r chi.Router) {
				r.Use(s.requireCampgroundAuthor)

				r.Get("/campgrounds/{id}/edit", s.handleEditForm)
				r.Put("/campgrounds/{id}", s.handleUpdate)
				r.Delete("/campgrounds/{id}", s.handleDelete)
			})

			r.With(s.requireReviewAuthor).Delete("/campgrounds/{id}/reviews/{reviewID}", s.handleDeleteReview)
		})
	})

	r.NotFound(s.handleNotFound)

	s.router = r
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// methodOverride lets HTML forms issue PUT and DELETE through a hidden
// _method field.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := r.PostFormValue("_method"); m {
			case http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func tmplStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
