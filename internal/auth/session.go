package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	sessionExpiry = 7 * 24 * time.Hour
	cookieName    = "camp_session"
)

// SessionStore manages sessions in SQLite. Sessions exist for anonymous
// visitors too, so the flash notice and return-to slot work before login.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a session store.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Ensure returns the request's session ID, creating an anonymous session
// and setting the cookie if none exists or the existing one is invalid.
func (s *SessionStore) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if ok, err := s.valid(cookie.Value); err != nil {
			return "", err
		} else if ok {
			return cookie.Value, nil
		}
	}

	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generating session ID: %w", err)
	}

	expiresAt := time.Now().Add(sessionExpiry)
	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, user_id, expires_at) VALUES (?, NULL, ?)",
		id, expiresAt,
	); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	setCookie(w, id, expiresAt)
	return id, nil
}

// UserID returns the signed-in user for the given session, or 0 for an
// anonymous or expired session.
func (s *SessionStore) UserID(sessionID string) (int64, error) {
	var userID sql.NullInt64
	var expiresAt time.Time
	err := s.db.QueryRow(
		"SELECT user_id, expires_at FROM sessions WHERE id = ?", sessionID,
	).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying session: %w", err)
	}

	if time.Now().After(expiresAt) {
		if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
			return 0, fmt.Errorf("deleting expired session: %w", err)
		}
		return 0, nil
	}

	if !userID.Valid {
		return 0, nil
	}
	return userID.Int64, nil
}

// Login attaches a user to a fresh session. The session ID is rotated;
// the return-to slot and any pending flash carry over from the old session.
func (s *SessionStore) Login(w http.ResponseWriter, oldSessionID string, userID int64) (string, error) {
	var returnTo, flashKind, flashMsg string
	err := s.db.QueryRow(
		"SELECT return_to, flash_kind, flash_msg FROM sessions WHERE id = ?", oldSessionID,
	).Scan(&returnTo, &flashKind, &flashMsg)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("reading session: %w", err)
	}

	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("generating session ID: %w", err)
	}

	expiresAt := time.Now().Add(sessionExpiry)
	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, user_id, return_to, flash_kind, flash_msg, expires_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, userID, returnTo, flashKind, flashMsg, expiresAt,
	); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", oldSessionID); err != nil {
		return "", fmt.Errorf("deleting old session: %w", err)
	}

	setCookie(w, id, expiresAt)
	return id, nil
}

// Logout removes the session and clears the cookie.
func (s *SessionStore) Logout(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil // no session to destroy
	}

	if _, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", cookie.Value); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// SetFlash stores a one-shot notice on the session, replacing any pending one.
func (s *SessionStore) SetFlash(sessionID, kind, msg string) error {
	if _, err := s.db.Exec(
		"UPDATE sessions SET flash_kind = ?, flash_msg = ? WHERE id = ?",
		kind, msg, sessionID,
	); err != nil {
		return fmt.Errorf("setting flash: %w", err)
	}
	return nil
}

// PopFlash returns and clears the pending notice, if any.
func (s *SessionStore) PopFlash(sessionID string) (kind, msg string, err error) {
	err = s.db.QueryRow(
		"SELECT flash_kind, flash_msg FROM sessions WHERE id = ?", sessionID,
	).Scan(&kind, &msg)
	if err == sql.ErrNoRows {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("reading flash: %w", err)
	}

	if kind != "" || msg != "" {
		if _, err := s.db.Exec(
			"UPDATE sessions SET flash_kind = '', flash_msg = '' WHERE id = ?", sessionID,
		); err != nil {
			return "", "", fmt.Errorf("clearing flash: %w", err)
		}
	}
	return kind, msg, nil
}

// SetReturnTo remembers the path to redirect to after login. A single
// slot, overwritten on each write.
func (s *SessionStore) SetReturnTo(sessionID, path string) error {
	if _, err := s.db.Exec(
		"UPDATE sessions SET return_to = ? WHERE id = ?", path, sessionID,
	); err != nil {
		return fmt.Errorf("setting return path: %w", err)
	}
	return nil
}

// PopReturnTo returns and clears the remembered path, if any.
func (s *SessionStore) PopReturnTo(sessionID string) (string, error) {
	var path string
	err := s.db.QueryRow(
		"SELECT return_to FROM sessions WHERE id = ?", sessionID,
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading return path: %w", err)
	}

	if path != "" {
		if _, err := s.db.Exec(
			"UPDATE sessions SET return_to = '' WHERE id = ?", sessionID,
		); err != nil {
			return "", fmt.Errorf("clearing return path: %w", err)
		}
	}
	return path, nil
}

// Cleanup removes expired sessions.
func (s *SessionStore) Cleanup() error {
	if _, err := s.db.Exec(
		"DELETE FROM sessions WHERE expires_at < ?", time.Now(),
	); err != nil {
		return fmt.Errorf("cleaning up sessions: %w", err)
	}
	return nil
}

// valid reports whether a session row exists and has not expired.
func (s *SessionStore) valid(sessionID string) (bool, error) {
	var expiresAt time.Time
	err := s.db.QueryRow(
		"SELECT expires_at FROM sessions WHERE id = ?", sessionID,
	).Scan(&expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying session: %w", err)
	}
	return time.Now().Before(expiresAt), nil
}

func setCookie(w http.ResponseWriter, id string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
