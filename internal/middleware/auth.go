package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	UserContextKey contextKey = "user"
)

// publicPaths are served without a token.
var publicPaths = []string{
	"/health",
	"/metrics",
}

// TokenValidator turns an Authorization header into claims.
type TokenValidator interface {
	ExtractTokenFromHeader(header string) (string, error)
	ValidateToken(token string) (*models.Claims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	tokens TokenValidator
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates JWT tokens and adds user context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		token, err := m.tokens.ExtractTokenFromHeader(authHeader)
		if err != nil {
			http.Error(w, "Authorization header must use the Bearer scheme", http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token expired"
			}
			log.WithFields(log.Fields{"path": r.URL.Path, "error": err}).Debug("Rejected request token")
			http.Error(w, msg, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission middleware checks if the user has the required permission
func (m *AuthMiddleware) RequirePermission(requiredAction string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserFromContext(r.Context())
			if !ok {
				http.Error(w, "User context not found", http.StatusUnauthorized)
				return
			}

			if !claims.HasPermission(requiredAction) {
				log.WithFields(log.Fields{
					"user":   claims.Username,
					"role":   claims.Role,
					"action": requiredAction,
				}).Info("Permission denied")
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)
	return claims, ok
}

// shouldSkipAuth determines if authentication should be skipped for a given path
func shouldSkipAuth(path string) bool {
	for _, skipPath := range publicPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}
