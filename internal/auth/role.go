package auth

// Role is the closed set of access levels a request can carry.
// Anonymous is never persisted; it is the absence of a session.
type Role string

// Known roles.
const (
	RoleAnonymous  Role = "anonymous"
	RoleRegistered Role = "registered"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
// Unknown values degrade to anonymous so a corrupted record fails closed.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleRegistered:
		return RoleRegistered
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleAnonymous
	}
}

// Satisfies reports whether the actual role meets the required one.
// Admin satisfies every role check; this override is intentional and
// consistent across all guarded routes.
func (r Role) Satisfies(required Role) bool {
	if required == RoleAnonymous {
		return true
	}
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// Identity is the resolved caller for a single request. It is derived from a
// session at resolution time and never shared across requests.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
