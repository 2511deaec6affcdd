package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func newTestAuth(t *testing.T) (*auth.Service, *AuthMiddleware) {
	t.Helper()
	authService, err := auth.NewService("testsecret", time.Hour)
	require.NoError(t, err)
	return authService, NewAuthMiddleware(authService)
}

func tokenFor(t *testing.T, s *auth.Service, username string, role models.Role) string {
	t.Helper()
	token, err := s.GenerateToken("id-"+username, username, role)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	authService, mw := newTestAuth(t)
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "id-old",
		"username": "old",
		"role":     "viewer",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("testsecret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		header   string
		want     int
		wantBody string
		wantUser string
	}{
		{"valid token", "/api/maintenance/schedules", "Bearer " + tokenFor(t, authService, "testuser", models.RoleAdmin), http.StatusOK, "", "testuser"},
		{"missing header", "/api/maintenance/schedules", "", http.StatusUnauthorized, "Authorization header required", ""},
		{"garbage token", "/api/maintenance/state", "Bearer invalid-token", http.StatusUnauthorized, "Invalid token", ""},
		{"token without scheme", "/api/maintenance/state", tokenFor(t, authService, "bare", models.RoleAdmin), http.StatusUnauthorized, "Bearer scheme", ""},
		{"basic scheme", "/api/maintenance/state", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "Bearer scheme", ""},
		{"expired token", "/api/maintenance/state", "Bearer " + stale, http.StatusUnauthorized, "Token expired", ""},
		{"health is public", "/health", "", http.StatusOK, "", ""},
		{"metrics are public", "/metrics", "", http.StatusOK, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			var seen *models.Claims
			reached := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				reached = true
				seen, _ = GetUserFromContext(r.Context())
			})

			mw.Authenticate(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want == http.StatusOK, reached)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantUser != "" {
				require.NotNil(t, seen)
				assert.Equal(t, tt.wantUser, seen.Username)
			}
		})
	}
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	authService, mw := newTestAuth(t)

	tests := []struct {
		name   string
		role   models.Role
		action string
		want   int
	}{
		{"admin deletes", models.RoleAdmin, models.ActionDeleteMaintenance, http.StatusOK},
		{"manager creates", models.RoleManager, models.ActionCreateMaintenance, http.StatusOK},
		{"technician updates", models.RoleTechnician, models.ActionUpdateMaintenance, http.StatusOK},
		{"technician cannot delete", models.RoleTechnician, models.ActionDeleteMaintenance, http.StatusForbidden},
		{"viewer views", models.RoleViewer, models.ActionViewMaintenance, http.StatusOK},
		{"viewer cannot create", models.RoleViewer, models.ActionCreateMaintenance, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tokenFor(t, authService, "user", tt.role)
			req := httptest.NewRequest("POST", "/api/maintenance/schedules", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handlerCalled := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			})

			mw.Authenticate(mw.RequirePermission(tt.action)(handler)).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.want == http.StatusOK, handlerCalled)
		})
	}

	t.Run("no user context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/maintenance/schedules", nil)
		w := httptest.NewRecorder()
		mw.RequirePermission(models.ActionViewMaintenance)(http.NotFoundHandler()).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	claims := &models.Claims{
		UserID:   "test-id",
		Username: "testuser",
		Role:     models.RoleAdmin,
	}

	ctx := context.WithValue(context.Background(), UserContextKey, claims)

	retrievedClaims, ok := GetUserFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, claims.UserID, retrievedClaims.UserID)
	assert.Equal(t, claims.Username, retrievedClaims.Username)
	assert.Equal(t, claims.Role, retrievedClaims.Role)

	_, ok = GetUserFromContext(context.Background())
	assert.False(t, ok)

	// a plain string key must not collide with ours
	ctx = context.WithValue(context.Background(), "user", claims) //nolint:staticcheck
	_, ok = GetUserFromContext(ctx)
	assert.False(t, ok)
}
