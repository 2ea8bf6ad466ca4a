package chi

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// UserFromContext returns the user id resolved by the auth middleware.
func UserFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser stores a resolved user id in the context. Exposed for
// handler tests.
func ContextWithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// BearerAuthMiddleware returns a middleware that resolves Bearer API keys
// to user ids. Handlers never trust caller-supplied identity; the resolved
// id is the only user scope they see.
func BearerAuthMiddleware(apiKeys map[string]string) func(http.Handler) http.Handler {
	keyToUser := make(map[string]string, len(apiKeys))
	for k, u := range apiKeys {
		if k != "" && u != "" {
			keyToUser[k] = u
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthorized,
					"authorization header must use Bearer scheme")
				return
			}

			userID, ok := keyToUser[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), userID)))
		})
	}
}
