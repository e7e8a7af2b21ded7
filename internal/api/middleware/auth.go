package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/packwise/packwise/internal/api/models"
	"github.com/packwise/packwise/internal/auth"
)

// userIDKey is the context key for the authenticated user ID.
type userIDKey struct{}

// TokenAuthenticator resolves a bearer token to a user ID.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

// Auth requires a valid bearer token and puts the token's subject into the
// request context. Failures answer 401 with a WWW-Authenticate challenge.
func Auth(authenticator TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, detail := bearerToken(r.Header.Get("Authorization"))
			if detail != "" {
				writeUnauthorized(w, r, "", detail)
				return
			}

			userID, err := authenticator.Authenticate(token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrAccessTokenExpired):
					writeUnauthorized(w, r, "invalid_token", "access token has expired")
				case errors.Is(err, auth.ErrInvalidAccessToken):
					writeUnauthorized(w, r, "invalid_token", "invalid access token")
				default:
					writeUnauthorized(w, r, "invalid_token", "authentication failed")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header. The scheme is
// matched case-insensitively. A non-empty detail explains a rejection.
func bearerToken(header string) (token, detail string) {
	const prefix = "Bearer "
	switch {
	case header == "":
		return "", "missing authorization header"
	case len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix):
		return "", "invalid authorization header format"
	}
	token = strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", "missing bearer token"
	}
	return token, ""
}

// writeUnauthorized writes the 401 problem directly; the response package
// imports this one.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, errorCode, detail string) {
	challenge := `Bearer realm="packwise"`
	if errorCode != "" {
		challenge += `, error="` + errorCode + `"`
	}
	w.Header().Set("WWW-Authenticate", challenge)

	problem := models.NewUnauthorized(GetRequestID(r.Context()), detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}

// GetUserID retrieves the authenticated user ID from the context.
// Returns an empty string if not authenticated.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}
	return ""
}
