package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"news-portal/internal/handler/http/respond"
)

// errTooManyRequests is the body of every 429 response.
var errTooManyRequests = errors.New("too many requests, please try again later")

// RateLimit allows requests per window for each client address.
// A non-positive requests disables limiting.
func RateLimit(requests int, window time.Duration, ips IPExtractor) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if ips == nil {
		ips = ClientIP{}
	}
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ips.ExtractIP(r)
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respond.Error(w, http.StatusTooManyRequests, errTooManyRequests)
		}),
	)
}
