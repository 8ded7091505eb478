package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jharden/campgrounds/internal/apperror"
	"github.com/jharden/campgrounds/internal/auth"
)

// pageData is the envelope every template receives: the signed-in user,
// the popped one-shot flash notice, and the page's own data.
type pageData struct {
	User      *auth.User
	FlashKind string
	FlashMsg  string
	Data      any
}

type errorData struct {
	Title   string
	Message string
}

// render executes a page template, popping the session's pending flash.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	user, _ := auth.UserFrom(r.Context())

	var kind, msg string
	if sessionID := auth.SessionFrom(r.Context()); sessionID != "" {
		var err error
		kind, msg, err = s.sessions.PopFlash(sessionID)
		if err != nil {
			slog.Error("reading flash", "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, pageData{
		User:      user,
		FlashKind: kind,
		FlashMsg:  msg,
		Data:      data,
	}); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
	}
}

// flash stores a one-shot notice on the request's session.
func (s *Server) flash(r *http.Request, kind, msg string) {
	sessionID := auth.SessionFrom(r.Context())
	if sessionID == "" {
		return
	}
	if err := s.sessions.SetFlash(sessionID, kind, msg); err != nil {
		slog.Error("setting flash", "error", err)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFoundPage(w, r)
}

func (s *Server) notFoundPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error.html", errorData{
		Title:   "Page Not Found",
		Message: "The page you are looking for does not exist.",
	})
}

// serverError logs the cause and renders the generic 500 page. The
// internal error never reaches the response.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.render(w, r, http.StatusInternalServerError, "error.html", errorData{
		Title:   "Oh No, Something Went Wrong!",
		Message: "Please try again later.",
	})
}

// fail maps a repository error to a response: missing resources get the
// 404 page, anything else the generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		s.notFoundPage(w, r)
		return
	}
	s.serverError(w, r, err)
}
