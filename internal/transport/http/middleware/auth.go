package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/event-ops-api/internal/infrastructure/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

// SessionCookieName is the client-held credential. HttpOnly; Secure in
// production; 14-day max age.
const SessionCookieName = "session"

// Auth returns middleware that validates the session artifact and injects
// its claims into the request context. The artifact is read from the
// session cookie first, then from a Bearer header for non-browser clients.
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				tokenStr = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
			if tokenStr == "" {
				writeJSONError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				// An invalid or expired artifact means "not
				// authenticated", never a server error. Clear the
				// cookie so the client re-authenticates.
				clearSessionCookie(w)
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}

// WithClaims injects claims into ctx. Exposed for handler tests.
func WithClaims(ctx context.Context, c *jwtinfra.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
