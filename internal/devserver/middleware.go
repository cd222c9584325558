package devserver

import (
	"context"
	"net/http"
	"strings"

	"tuninggarage/internal/security"
	"tuninggarage/internal/store/sqlite"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(r *http.Request) *sqlite.User {
	if u, ok := r.Context().Value(userContextKey).(*sqlite.User); ok {
		return u
	}
	return nil
}

// AuthMiddleware validates the bearer token and attaches the user.
func AuthMiddleware(tokens *security.TokenService, users *sqlite.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				http.Error(w, "missing or invalid Authorization header", http.StatusUnauthorized)
				return
			}
			tokenStr := strings.TrimSpace(header[len("Bearer "):])

			userID, err := tokens.UserID(tokenStr)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || user == nil {
				http.Error(w, "user not found", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
