package authenticator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrInvalidCredentials is returned for any failed login. It never says
// which part of the credentials was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator defines the interface for all authenticators
type Authenticator interface {
	// Name returns the authenticator name (e.g., "authn")
	Name() string

	// Authenticate validates credentials and returns the username on success
	Authenticate(ctx context.Context, input AuthenticatorInput) (string, error)

	// Status checks if the authenticator is healthy
	Status(ctx context.Context) error
}

// AuthenticatorInput contains the input for authentication
type AuthenticatorInput struct {
	Login       string
	Credentials []byte
	ClientIP    string
}

// Registry holds all registered authenticators
type Registry struct {
	mu             sync.RWMutex
	authenticators map[string]Authenticator
}

// NewRegistry creates a new authenticator registry
func NewRegistry(auths ...Authenticator) *Registry {
	r := &Registry{authenticators: make(map[string]Authenticator)}
	for _, auth := range auths {
		r.Register(auth)
	}
	return r
}

// Register adds an authenticator to the registry
func (r *Registry) Register(auth Authenticator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticators[auth.Name()] = auth
}

// Get returns an authenticator by name
func (r *Registry) Get(name string) (Authenticator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	auth, ok := r.authenticators[name]
	return auth, ok
}

// MustGet returns an authenticator by name or an error naming the missing one
func (r *Registry) MustGet(name string) (Authenticator, error) {
	auth, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("authenticator %q not found", name)
	}
	return auth, nil
}

// Installed returns all installed authenticator names, sorted
func (r *Registry) Installed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.authenticators))
	for name := range r.authenticators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
