package endpoints

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/audit"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server"
)

// LoginRequest is the body of POST /admin/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries a new session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterLoginEndpoint registers the admin login endpoint
func RegisterLoginEndpoint(s *server.Server) {
	// POST /admin/login - no auth required
	s.Router.HandleFunc("/admin/login", handleLogin(s.Authenticators, s.Sessions, s.Audit, s.Log)).Methods("POST")
}

func handleLogin(registry *authenticator.Registry, sessions server.Sessions, auditor *audit.Logger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, err)
			return
		}
		if req.Username == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		_, clientIP := actor(r)
		event := audit.AuthenticateEvent{
			Username:          req.Username,
			ClientIP:          clientIP,
			AuthenticatorName: "authn",
		}

		authn, ok := registry.Get("authn")
		if !ok {
			log.Error("password authenticator is not installed")
			respondWithError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		username, err := authn.Authenticate(r.Context(), authenticator.AuthenticatorInput{
			Login:       req.Username,
			Credentials: []byte(req.Password),
			ClientIP:    clientIP,
		})
		if err != nil {
			event.ErrorMessage = err.Error()
			auditor.Log(event)
			if errors.Is(err, authenticator.ErrInvalidCredentials) {
				respondWithError(w, http.StatusUnauthorized, "invalid username or password")
				return
			}
			log.Error("authentication failed", zap.Error(err))
			respondWithErr(w, err)
			return
		}

		token, expiresAt, err := sessions.Issue(username)
		if err != nil {
			log.Error("failed to issue session token", zap.Error(err))
			respondWithErr(w, err)
			return
		}

		event.Username = username
		event.Success = true
		auditor.Log(event)
		respondWithJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
	}
}
