package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-maintenance/internal/middleware"
)

// profileResponse is what a caller learns about their own token.
type profileResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}

// GetProfile returns the identity carried by the request's bearer token.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     string(claims.Role),
		Exp:      claims.Exp,
	})
}
