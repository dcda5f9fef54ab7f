package policy

// Role is the single canonical role convention. Legacy encodings (negative
// user ids, is_admin flags) are mapped once by cmd/migrate-roles and never
// consulted at runtime.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleBanker Role = "banker"
)

// ParseRole maps a stored role string to a Role, defaulting to RoleUser for
// anything unrecognised so a corrupt row can never grant elevated access.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleBanker:
		return RoleBanker
	default:
		return RoleUser
	}
}

// Principal describes the resolved caller identity attached to an authorized
// request. Constructed fresh per request, never persisted.
type Principal struct {
	UserID         int64
	Role           Role
	EntrepreneurID *int64
	ContributorID  *int64
}

// Anonymous is the principal attached to requests on public routes.
func Anonymous() Principal {
	return Principal{UserID: 0, Role: RoleUser}
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsAnonymous reports whether the principal was resolved from a token.
func (p Principal) IsAnonymous() bool {
	return p.UserID == 0
}

// Denial reason codes, stable and machine checkable.
const (
	ReasonRoleExcluded     = "ROLE_EXCLUDED"
	ReasonNotOwner         = "NOT_OWNER"
	ReasonMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Decision is the outcome of evaluating the access rules for one request.
// Redactions lists response fields the handler must withhold even though the
// request itself is allowed.
type Decision struct {
	Allow      bool
	Reason     string
	Redactions []string
}

func allow() Decision {
	return Decision{Allow: true}
}

func deny(reason string) Decision {
	return Decision{Allow: false, Reason: reason}
}
