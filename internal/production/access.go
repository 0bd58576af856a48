package production

// Roles known to the service.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleViewer     = "viewer"
)

// Identity is the acting user for one request.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the identity has global administrator rights.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// CanSubmitFor decides whether identity may record or view entries for a
// section, given the section's supervisor user ids.
func CanSubmitFor(identity Identity, supervisorIDs []string) bool {
	if identity.IsAdmin() {
		return true
	}
	if identity.Role != RoleSupervisor || identity.UserID == "" {
		return false
	}
	for _, id := range supervisorIDs {
		if id == identity.UserID {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleViewer:
		return true
	}
	return false
}
