// Package identity carries the authenticated admin through a request.
//
// The session package verifies raw bearer tokens. An Identity combines the
// verified claims with request-specific context such as the client address,
// and is what handlers and the audit log consume.
//
// # Basic Usage
//
//	id := identity.FromClaims(claims).WithRemoteIP(clientIP)
//	ctx = identity.Set(ctx, id)
//
//	id, ok := identity.Get(ctx)
package identity
