package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/packwise/packwise/internal/api/models"
)

// SecurityHeaders adds standard security headers to all HTTP responses.
// Responses under /v1/me/ carry a user's trips and checklists and are
// additionally marked Cache-Control: no-store.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

		if strings.HasPrefix(r.URL.Path, "/v1/me/") {
			h.Set("Cache-Control", "no-store")
		}

		next.ServeHTTP(w, r)
	})
}

// RequireTLS rejects plain-HTTP requests forwarded by a load balancer
// (X-Forwarded-Proto) when REQUIRE_TLS=true. Requests without the header and
// the /v1/ops/ probes are let through.
func RequireTLS(next http.Handler) http.Handler {
	requireTLS := os.Getenv("REQUIRE_TLS") == "true"

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requireTLS || strings.HasPrefix(r.URL.Path, "/v1/ops/") {
			next.ServeHTTP(w, r)
			return
		}

		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" && proto != "https" {
			problem := models.NewProblem(models.ProblemTypeTLSRequired, "TLS required", http.StatusForbidden, GetRequestID(r.Context()))
			problem.Detail = "This endpoint requires HTTPS"
			problem.Instance = r.URL.Path
			problem.Write(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
