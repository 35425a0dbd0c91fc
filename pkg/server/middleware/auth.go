package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/identity"
)

const bearerPrefix = "Bearer "

// TokenVerifier verifies session tokens
type TokenVerifier interface {
	Verify(token string) (*session.Claims, error)
}

// SessionAuthenticator is middleware that requires a valid admin session
type SessionAuthenticator struct {
	Verifier TokenVerifier
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(verifier TokenVerifier) *SessionAuthenticator {
	return &SessionAuthenticator{Verifier: verifier}
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the resulting identity in the request context
func (s *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if len(authHeader) == 0 {
			unauthorized(w, "Authorization missing")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			unauthorized(w, "Malformed authorization header")
			return
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			unauthorized(w, "Malformed authorization header")
			return
		}

		claims, err := s.Verifier.Verify(token)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		id := identity.FromClaims(claims).WithRemoteIP(r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="portfolio-admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
