// Package middleware holds the cross-cutting HTTP middleware built on the
// go-chi ecosystem: CORS and per-client rate limiting.
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultOrigin is the admin dashboard served by the frontend dev server.
const DefaultOrigin = "http://localhost:5173"

// CORS allows credentialed requests from origins. The session cookie is
// only sent cross-origin when credentials are allowed.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{DefaultOrigin}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}
