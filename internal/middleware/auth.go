package middleware

import (
	"context"
	"net/http"
	"strings"
)

// context key
type contextKey string

const BearerKey contextKey = "bearer"

// BearerToken extracts the Google access token from the Authorization header
// and stores it in the request context. The token is opaque here; it is only
// verified when a Google API rejects it. Requests without a header pass
// through, handlers that need the token decide what to do without one.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), BearerKey, parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to extract the token
func Bearer(ctx context.Context) string {
	token, _ := ctx.Value(BearerKey).(string)
	return token
}
