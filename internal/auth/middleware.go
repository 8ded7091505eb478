package auth

import (
	"context"
	"net/http"
)

type contextKey int

const (
	userKey contextKey = iota
	sessionKey
)

// UserFrom returns the signed-in user attached to the request context.
func UserFrom(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}

// SessionFrom returns the session ID attached to the request context.
func SessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// CurrentUser is middleware that ensures every request has a session and
// attaches the resolved user (if any) to the request context. It never
// rejects a request; RequireLogin does that.
func CurrentUser(sessions *SessionStore, users *UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := sessions.Ensure(w, r)
			if err != nil {
				http.Error(w, "Internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sessionID)

			if userID, err := sessions.UserID(sessionID); err == nil && userID != 0 {
				if u, err := users.GetByID(userID); err == nil {
					ctx = context.WithValue(ctx, userKey, u)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin is middleware that redirects unauthenticated requests to
// the login page. The originally requested path is remembered so a
// successful login can return to it.
func RequireLogin(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFrom(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			sessionID := SessionFrom(r.Context())
			if sessionID != "" {
				_ = sessions.SetReturnTo(sessionID, r.URL.RequestURI())
				_ = sessions.SetFlash(sessionID, "error", "You must be signed in")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		})
	}
}
