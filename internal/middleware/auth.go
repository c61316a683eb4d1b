package middleware

import (
	"context"
	"net/http"
	"strings"

	"bitwallet/internal/validator"
)

type contextKey string

const (
	ownerIDKey  contextKey = "owner_id"
	apiKeyKey   contextKey = "api_key"
	adminKeyKey contextKey = "admin_key"
)

// KeyResolver maps an API key to the owner it was issued to.
type KeyResolver interface {
	Resolve(ctx context.Context, apiKey string) (int64, error)
}

func OwnerIDFromContext(ctx context.Context) (int64, bool) {
	ownerID, ok := ctx.Value(ownerIDKey).(int64)
	return ownerID, ok
}

func APIKeyFromContext(ctx context.Context) (string, bool) {
	apiKey, ok := ctx.Value(apiKeyKey).(string)
	return apiKey, ok
}

// apiKeyFromRequest accepts the key either in X-API-Key or as a bearer token.
func apiKeyFromRequest(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Auth resolves the caller's API key and stores both the key and the owner id
// on the request context.
func Auth(resolver KeyResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := apiKeyFromRequest(r)
			if apiKey == "" {
				http.Error(w, "missing api key", http.StatusUnauthorized)
				return
			}
			if err := validator.ValidateAPIKey(apiKey); err != nil {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			ownerID, err := resolver.Resolve(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			ctx = context.WithValue(ctx, apiKeyKey, apiKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
