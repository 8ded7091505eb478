package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jharden/campgrounds/internal/auth"
)

// handleRegisterForm renders the sign-up page.
func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "register.html", nil)
}

// handleRegister creates the account and signs the new user in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	if username == "" || email == "" || password == "" {
		s.flash(r, "error", "username, email, and password are required")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	u, err := s.users.Register(username, email, password)
	if err != nil {
		s.flash(r, "error", err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	sessionID, err := s.sessions.Login(w, auth.SessionFrom(r.Context()), u.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.sessions.SetFlash(sessionID, "success", "Welcome to Campgrounds!"); err != nil {
		slog.Error("setting flash", "error", err)
	}

	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}

// handleLoginForm renders the sign-in page.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFrom(r.Context()); ok {
		http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "login.html", nil)
}

// handleLogin verifies credentials, rotates the session, and returns the
// user to the page they were trying to reach, if any.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	u, err := s.users.Authenticate(username, password)
	if err != nil {
		s.flash(r, "error", "invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sessionID, err := s.sessions.Login(w, auth.SessionFrom(r.Context()), u.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if err := s.sessions.SetFlash(sessionID, "success", "Welcome back!"); err != nil {
		slog.Error("setting flash", "error", err)
	}

	returnTo, err := s.sessions.PopReturnTo(sessionID)
	if err != nil {
		slog.Error("reading return path", "error", err)
	}
	if returnTo == "" {
		returnTo = "/campgrounds"
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// handleLogout ends the session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(w, r); err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/campgrounds", http.StatusSeeOther)
}
