package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/api/middleware"
	"github.com/packwise/packwise/internal/auth"
)

const (
	testSigningKey = "test-secret-key-for-testing-only"
	challenge      = `Bearer realm="packwise"`
	tokenChallenge = `Bearer realm="packwise", error="invalid_token"`
)

func testJWT(now func() time.Time) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: testSigningKey,
		Issuer:     "https://api.packwise.app",
		Audience:   "packwise-api",
		Now:        now,
	})
}

func mustToken(t *testing.T, svc *auth.JWTService, userID string) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

func TestAuth_Rejections(t *testing.T) {
	expiredToken := mustToken(t, testJWT(func() time.Time { return time.Now().Add(-2 * time.Hour) }), "usr_1")
	foreignToken := mustToken(t, auth.NewJWTService(auth.JWTConfig{
		SigningKey: "someone-elses-key", Issuer: "https://api.packwise.app", Audience: "packwise-api",
	}), "usr_1")

	tests := []struct {
		name       string
		header     string
		wantDetail string
		wantChal   string
	}{
		{"missing header", "", "missing authorization header", challenge},
		{"no scheme", "token123", "invalid authorization header format", challenge},
		{"basic auth", "Basic dXNlcjpwYXNz", "invalid authorization header format", challenge},
		{"empty bearer", "Bearer ", "missing bearer token", challenge},
		{"bare scheme", "Bearer", "invalid authorization header format", challenge},
		{"garbage token", "Bearer invalid.jwt.token", "invalid access token", tokenChallenge},
		{"wrong key", "Bearer " + foreignToken, "invalid access token", tokenChallenge},
		{"expired", "Bearer " + expiredToken, "access token has expired", tokenChallenge},
	}

	h := middleware.Auth(testJWT(nil))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler must not run")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me/trips", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantChal, rec.Header().Get("WWW-Authenticate"))
			assert.Contains(t, rec.Body.String(), `"instance":"/v1/me/trips"`)
			assert.Contains(t, rec.Body.String(), tt.wantDetail)
		})
	}
}

func TestAuth_SetsUserID(t *testing.T) {
	svc := testJWT(nil)
	token := mustToken(t, svc, "usr_testuser123")

	for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
		t.Run(scheme, func(t *testing.T) {
			var userID string
			h := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID = middleware.GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/me/trips", http.NoBody)
			req.Header.Set("Authorization", scheme+" "+token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "usr_testuser123", userID)
		})
	}
}

func TestAuth_AcceptsPreviousSigningKey(t *testing.T) {
	old := auth.NewJWTService(auth.JWTConfig{
		SigningKey: "retired-key", Issuer: "https://api.packwise.app", Audience: "packwise-api",
	})
	token := mustToken(t, old, "usr_rotated")

	rotated := auth.NewJWTService(auth.JWTConfig{
		SigningKey:   testSigningKey,
		PreviousKeys: []string{"retired-key"},
		Issuer:       "https://api.packwise.app",
		Audience:     "packwise-api",
	})

	var userID string
	h := middleware.Auth(rotated)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		userID = middleware.GetUserID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/v1/me/trips", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "usr_rotated", userID)
}

func TestGetUserID_NoAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/me/trips", http.NoBody)
	assert.Empty(t, middleware.GetUserID(req.Context()))
}
