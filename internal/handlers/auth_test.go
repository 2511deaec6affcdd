package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestGetProfile(t *testing.T) {
	t.Run("returns claims", func(t *testing.T) {
		claims := &models.Claims{UserID: "u-1", Username: "mia", Role: models.RoleTechnician, Exp: 1718190000}
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))
		w := httptest.NewRecorder()

		GetProfile(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var got profileResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "u-1", got.UserID)
		assert.Equal(t, "mia", got.Username)
		assert.Equal(t, "technician", got.Role)
		assert.Equal(t, int64(1718190000), got.Exp)
	})

	t.Run("no user context", func(t *testing.T) {
		w := httptest.NewRecorder()
		GetProfile(w, httptest.NewRequest("GET", "/api/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		GetProfile(w, httptest.NewRequest("POST", "/api/auth/me", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
