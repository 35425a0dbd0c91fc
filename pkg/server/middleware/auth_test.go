package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/identity"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (*session.Claims, error) {
	if user, ok := s[token]; ok {
		return &session.Claims{Username: user}, nil
	}
	return nil, errors.New("bad token")
}

func TestSessionAuthenticator(t *testing.T) {
	auth := NewSessionAuthenticator(stubVerifier{"good": "alice"})

	var seen string
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if ok {
			seen = id.Username + "@" + id.RemoteIP.String()
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token token=\"good\"", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/admin/images", nil)
			req.RemoteAddr = "10.0.0.7:4000"
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "alice@10.0.0.7", seen)
			} else {
				assert.Empty(t, seen)
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}
