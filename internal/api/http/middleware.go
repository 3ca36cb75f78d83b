package http

import (
	"context"
	"net/http"
	"strings"

	"borrowhood-backend/internal/logger"
	"borrowhood-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// userID pulls the authenticated user out of the request context. Only
// valid behind the auth middleware.
func userID(r *http.Request) int32 {
	id, _ := r.Context().Value(userIDKey).(int32)
	return id
}

// authMiddleware validates the bearer token and stashes the caller's id
// in the request context.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// loggingMiddleware records one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		logger.Debug("Handled request", "method", r.Method, "path", r.URL.Path)
	})
}
