package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/requestid"
	"news-portal/internal/handler/http/respond"
	authservice "news-portal/internal/service/auth"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// Authenticator resolves a raw credential into the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (entity.Principal, error)
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p entity.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFrom returns the caller stored by Protect.
func PrincipalFrom(ctx context.Context) (entity.Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(entity.Principal)
	return p, ok
}

// Credential extracts the token from the Authorization bearer header or,
// failing that, from the named cookie.
func Credential(r *http.Request, cookieName string) string {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, prefix))
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "none" {
		return c.Value
	}
	return ""
}

// Protect rejects requests without a valid credential with 401 and stores
// the principal in the request context otherwise.
func Protect(authn Authenticator, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			p, err := authn.Authenticate(r.Context(), Credential(r, cookieName))
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if err != nil {
				slog.Default().Warn("request not authenticated",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("error", respond.SanitizeError(err)))
				RecordForbiddenAttempt("", r.Method)
				respond.FromError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects callers whose role is not listed with 403.
// It must run after Protect.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, _ := PrincipalFrom(r.Context())
			if err := authservice.Authorize(p, roles...); err != nil {
				RecordForbiddenAttempt(string(p.Role), r.Method)
				respond.FromError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
