package middleware

import (
	"context"
	"net/http"
)

func AdminKeyFromContext(ctx context.Context) (string, bool) {
	adminKey, ok := ctx.Value(adminKeyKey).(string)
	return adminKey, ok
}

// RequireAdmin gates a route on membership in the configured admin key set.
// Admin keys travel in the same headers as user API keys.
func RequireAdmin(isAdmin func(adminKey string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminKey := apiKeyFromRequest(r)
			if adminKey == "" {
				http.Error(w, "missing admin key", http.StatusUnauthorized)
				return
			}
			if !isAdmin(adminKey) {
				http.Error(w, "admin privileges required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), adminKeyKey, adminKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
