package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIsTokenValid(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	t.Run("valid token with future exp", func(t *testing.T) {
		assert.True(t, IsTokenValid(signedToken(t, jwt.MapClaims{"exp": future})))
	})

	t.Run("expired token", func(t *testing.T) {
		assert.False(t, IsTokenValid(signedToken(t, jwt.MapClaims{"exp": past})))
	})

	t.Run("token without exp is invalid", func(t *testing.T) {
		assert.False(t, IsTokenValid(signedToken(t, jwt.MapClaims{"sub": "carrier1"})))
	})

	t.Run("empty token", func(t *testing.T) {
		assert.False(t, IsTokenValid(""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.False(t, IsTokenValid("not.a.jwt"))
		assert.False(t, IsTokenValid("garbage"))
	})
}

func TestMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	var sawToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawToken = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, sawToken)
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	expired := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareStoresValidToken(t *testing.T) {
	var sawToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawToken = TokenFromContext(r.Context())
	})

	valid := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	rec := httptest.NewRecorder()
	Middleware(next).ServeHTTP(rec, req)

	assert.Equal(t, valid, sawToken)
}
