// Package mw contains HTTP middleware for the chordbase API.
package mw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chordbase/chordbase-api/internal/auth"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserClaimsKey is the context key for user claims.
const UserClaimsKey ContextKey = "user_claims"

// SecurityScheme is the name of the security scheme used in OpenAPI.
const SecurityScheme = "bearerAuth"

// UserClaims represents the authenticated user extracted from a bearer
// token.
type UserClaims struct {
	UserID   string // auth-provider user ID (sub claim)
	Email    string
	FullName string
}

// GetUserClaims extracts user claims from context. Returns nil when the
// request was not authenticated.
func GetUserClaims(ctx context.Context) *UserClaims {
	claims, _ := ctx.Value(UserClaimsKey).(*UserClaims)
	return claims
}

// HumaAuth returns a Huma middleware that authenticates operations whose
// security requirements include the bearer scheme. Public operations
// pass straight through.
func HumaAuth(api huma.API, verifier *auth.Verifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op == nil || !operationRequiresAuth(op) {
			next(ctx)
			return
		}

		authHeader := ctx.Header("Authorization")
		if authHeader == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing authorization header")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		tokenClaims, err := verifier.Verify(token)
		if err != nil {
			slog.Debug("auth validation failed", "error", err)
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid token")
			return
		}

		claims := &UserClaims{
			UserID:   tokenClaims.Subject,
			Email:    tokenClaims.Email,
			FullName: tokenClaims.FullName(),
		}

		newCtx := context.WithValue(ctx.Context(), UserClaimsKey, claims)
		next(huma.WithContext(ctx, newCtx))
	}
}

// operationRequiresAuth checks if the operation has bearerAuth in its
// security requirements.
func operationRequiresAuth(op *huma.Operation) bool {
	for _, secReq := range op.Security {
		if _, ok := secReq[SecurityScheme]; ok {
			return true
		}
	}
	return false
}
