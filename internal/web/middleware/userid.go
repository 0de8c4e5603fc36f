package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// RequireUserID is middleware that parses the chi URL parameter param as a
// UUID and stores its canonical form in the request context.
func RequireUserID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, param))
			if err != nil {
				http.Error(w, `{"error": "invalid user ID"}`, http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the user ID from the request context.
// Returns an empty string if none is set.
func GetUserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDContextKey).(string)
	if !ok {
		return ""
	}
	return id
}

// SetUserIDInContext adds a user ID to the context.
// This is primarily for testing - use RequireUserID middleware in production.
func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
