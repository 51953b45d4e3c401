package cognito

import "context"

// Context key type to avoid collisions
type contextKey string

// identityKey is the context key for an authenticated identity
const identityKey contextKey = "identity"

// WithIdentity adds an authenticated identity to the context. Upstream
// layers that authenticate callers by another mechanism use this to
// pre-populate the request before it reaches the authenticator.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the authenticated identity from context,
// or nil when the request has not been authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	if val := ctx.Value(identityKey); val != nil {
		if identity, ok := val.(*Identity); ok {
			return identity
		}
	}
	return nil
}
