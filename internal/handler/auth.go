package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

// SessionCookie carries the session token issued at login.
const SessionCookie = "fuel_session"

type identityKey struct{}

// identityFrom returns the identity requireAuth attached to ctx.
func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

type logoutResponse struct {
	Success bool `json:"success"`
}

type authStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Register handles POST /register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err, "", "Registration failed")
		return
	}

	if _, err := s.auth.Register(r.Context(), fields.String("username"), fields.String("password")); err != nil {
		s.fail(w, r, err, "", "Registration failed")
		return
	}
	writeJSON(w, http.StatusOK, registerResponse{Success: true, Message: "User registered"})
}

// Login handles POST /login. On success the session token is set as an
// HttpOnly cookie; API clients may also send it back as a Bearer token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		s.fail(w, r, err, "", "Login failed")
		return
	}

	sess, err := s.auth.Login(r.Context(), fields.String("username"), fields.String("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.fail(w, r, err, "", "Login failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   max(1, int(time.Until(sess.ExpiresAt).Seconds())),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Username: sess.Identity.Username})
}

// Logout handles POST /logout. It always succeeds; a missing or already
// invalid session is simply cleared.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		s.fail(w, r, err, "", "Logout failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, logoutResponse{Success: true})
}

// AuthStatus handles GET /auth/status.
func (s *Server) AuthStatus(w http.ResponseWriter, r *http.Request) {
	id, err := s.auth.Authenticate(r.Context(), sessionToken(r))
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusOK, authStatusResponse{Authenticated: false})
	case err != nil:
		s.fail(w, r, err, "", "Failed to check session")
	default:
		writeJSON(w, http.StatusOK, authStatusResponse{Authenticated: true, Username: id.Username})
	}
}

// requireAuth rejects requests without a valid session with 401 and attaches
// the caller's identity to the context otherwise.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.auth.Authenticate(r.Context(), sessionToken(r))
		if err != nil {
			s.fail(w, r, err, "", "Failed to check session")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	})
}

// sessionToken reads the Bearer token, falling back to the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
