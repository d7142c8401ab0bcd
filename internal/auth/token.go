// Package auth handles JWT authentication against the WordPress jwt-auth plugin.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

type tokenContextKey struct{}

// ContextWithToken stores a bearer token in the context.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token for the current request, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// IsTokenValid reports whether a JWT decodes and carries an exp claim in the
// future. Tokens without exp are treated as invalid, never as non-expiring.
// The signature is not verified here; that is the backend's job.
func IsTokenValid(token string) bool {
	if token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}

// Middleware extracts the Authorization bearer token into the request context.
// Requests without a token pass through untouched; downstream calls to the
// backend will then go out anonymous and fail there. Expired tokens are
// rejected here so the backend never sees them.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "malformed authorization header")
			return
		}
		if !IsTokenValid(token) {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "token expired")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithToken(r.Context(), token)))
	})
}
