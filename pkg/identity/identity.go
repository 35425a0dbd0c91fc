package identity

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated admin for a request.
type Identity struct {
	// Token claims
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Request context
	RemoteIP net.IP
}

// FromClaims creates an Identity from verified session claims.
func FromClaims(claims *session.Claims) *Identity {
	return &Identity{
		Username:  claims.Username,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
}

// WithRemoteIP sets the client address. ip may carry a port.
func (id *Identity) WithRemoteIP(ip string) *Identity {
	id.RemoteIP = ParseIP(ip)
	return id
}

// ParseIP extracts the address from "host:port" or a bare IP.
func ParseIP(addr string) net.IP {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return net.ParseIP(addr)
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}

// Username returns the admin username in ctx, or "" when unauthenticated.
func Username(ctx context.Context) string {
	if id, ok := Get(ctx); ok {
		return id.Username
	}
	return ""
}
