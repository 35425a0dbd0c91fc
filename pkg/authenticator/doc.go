// Package authenticator defines how administrators prove who they are.
//
// # Authenticator Interface
//
// All authenticators implement the Authenticator interface:
//
//	type Authenticator interface {
//	    Name() string
//	    Authenticate(ctx context.Context, input AuthenticatorInput) (string, error)
//	    Status(ctx context.Context) error
//	}
//
// # Built-in Authenticators
//
//   - authn: username and bcrypt password - see [github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/authn]
//
// A successful login is exchanged for a short-lived HS256 session token;
// see [github.com/doodlesbykumbi/portfolio-cms/pkg/authenticator/session].
package authenticator
