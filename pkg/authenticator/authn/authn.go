package authn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator"
	"github.com/doodlesbykumbi/portfolio-cms/pkg/server/store"
)

// MinPasswordLength is the shortest accepted admin password.
const MinPasswordLength = 8

// ErrWeakPassword is returned by HashPassword for passwords that are too short.
var ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// Authenticator implements username/password authentication
type Authenticator struct {
	admins store.AdminsStore
	health store.HealthStore
	now    func() time.Time
}

// NewPasswordAuthenticator creates a new password authenticator
func NewPasswordAuthenticator(admins store.AdminsStore, health store.HealthStore) *Authenticator {
	return &Authenticator{
		admins: admins,
		health: health,
		now:    time.Now,
	}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return "authn"
}

// Authenticate verifies the password and returns the username
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.AuthenticatorInput) (string, error) {
	username := strings.TrimSpace(input.Login)
	if username == "" {
		return "", errors.New("login is required")
	}

	admin, err := a.admins.GetAdmin(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// unknown users take as long as wrong passwords
			_ = bcrypt.CompareHashAndPassword(dummyHash, input.Credentials)
			return "", authenticator.ErrInvalidCredentials
		}
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, input.Credentials); err != nil {
		return "", authenticator.ErrInvalidCredentials
	}

	if err := a.admins.RecordLogin(admin.Username, a.now().UTC()); err != nil {
		return "", fmt.Errorf("failed to record login: %w", err)
	}
	return admin.Username, nil
}

// Status checks database connectivity
func (a *Authenticator) Status(ctx context.Context) error {
	if a.health == nil {
		return nil
	}
	return a.health.CheckConnectivity()
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password []byte) ([]byte, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
