package auth

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey int

const claimsKey ctxKey = iota

// WithClaims adds session claims to the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the session claims from context.
// Returns nil if the request is unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(claimsKey); v != nil {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}
	return nil
}
