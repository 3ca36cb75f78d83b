package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"borrowhood-backend/internal/domain"
	"borrowhood-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("a-very-long-test-secret-for-signing", 30)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%d", userID(r))
	})
	handler := authMiddleware(tokens)(next)

	t.Run("Valid token passes user through", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(7, "9876543210")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7", rec.Body.String())
	})

	t.Run("Missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Not found", domain.ErrNotFound, http.StatusNotFound},
		{"Forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"Invalid state", domain.ErrInvalidState, http.StatusConflict},
		{"Conflict", domain.ErrConflict, http.StatusConflict},
		{"Validation", domain.ErrValidation, http.StatusBadRequest},
		{"Wrapped validation", fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation), http.StatusBadRequest},
		{"Unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
