package models

// Role represents user roles in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

// Maintenance actions checked by the HTTP layer.
const (
	ActionViewMaintenance   = "view_maintenance"
	ActionCreateMaintenance = "create_maintenance"
	ActionUpdateMaintenance = "update_maintenance"
	ActionDeleteMaintenance = "delete_maintenance"
)

// Claims represents JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleTechnician, RoleViewer:
		return true
	default:
		return false
	}
}

// HasPermission checks if the role may perform a maintenance action
func (r Role) HasPermission(action string) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager:
		return action == ActionViewMaintenance || action == ActionCreateMaintenance ||
			action == ActionUpdateMaintenance || action == ActionDeleteMaintenance
	case RoleTechnician:
		return action == ActionViewMaintenance || action == ActionUpdateMaintenance
	case RoleViewer:
		return action == ActionViewMaintenance
	default:
		return false
	}
}

// HasPermission checks if the claims holder has permission for a specific action
func (c *Claims) HasPermission(action string) bool {
	return c.Role.HasPermission(action)
}
