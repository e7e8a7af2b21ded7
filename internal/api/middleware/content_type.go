package middleware

import (
	"mime"
	"net/http"

	"github.com/packwise/packwise/internal/api/models"
)

const jsonMediaType = "application/json"

// ContentTypeJSON defaults every response to JSON. Problem responses and
// handlers that set their own type keep it.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", jsonMediaType)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON answers 415 when a POST, PUT or PATCH declares a body that is
// not JSON. Requests without a Content-Type pass: item toggles and other
// action routes carry no body.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if declared := r.Header.Get("Content-Type"); declared != "" && !isJSON(declared) {
				problem := models.NewUnsupportedMediaType(GetRequestID(r.Context()), "Content-Type must be application/json")
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// isJSON matches application/json with any parameters, case-insensitively.
func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == jsonMediaType
}
