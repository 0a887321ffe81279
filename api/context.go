package api

import (
	"context"

	"github.com/roboarchive/roboarchive-backend/auth"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims attaches the verified token claims to the context
func ctxWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// claimsFromContext retrieves the verified token claims, if any
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
