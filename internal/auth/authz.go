package auth

import "github.com/acsops/acs-console/internal/store"

// Role is a role label carried by a session. The reserved value "admin"
// grants universal access.
type Role string

// RoleAdmin is the reserved role with universal access.
const RoleAdmin Role = "admin"

// IsAdmin reports whether the role is the reserved admin role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Access levels. Comparison is >=, higher is more permissive.
const (
	AccessRead  = 1
	AccessWrite = 2
)

// HasRole reports whether the session role equals the wanted role.
// The admin role matches any role.
func HasRole(session, want Role) bool {
	return session.IsAdmin() || session == want
}

// HasAccess reports whether the session may perform an action of the
// given level on the resource, judged against permission records already
// scoped to the session's role.
//
// An empty session role always denies. Admin always allows. Otherwise
// the highest access level among records matching the resource must
// reach the required level; duplicate records for the same resource are
// reduced by maximum, so authorization doesn't depend on record order.
// Absence of a matching record is denial, not an error.
func HasAccess(session Role, perms []*store.Permission, resource string, level int) bool {
	if session == "" {
		return false
	}
	if session.IsAdmin() {
		return true
	}

	best := 0
	found := false
	for _, p := range perms {
		if p.Role != string(session) || p.Resource != resource {
			continue
		}
		found = true
		if p.Access > best {
			best = p.Access
		}
	}
	return found && best >= level
}
