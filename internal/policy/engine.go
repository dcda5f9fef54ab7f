package policy

import (
	"net/http"
	"strconv"
)

// Engine evaluates the access rules for resolved principals. It is a pure
// decision function over the static route table; it performs no I/O.
type Engine struct {
	table *Table
}

// NewEngine wraps a compiled route table.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table}
}

// Match exposes route lookup for the request gate.
func (e *Engine) Match(method, path string) (*Route, map[string]string, bool) {
	return e.table.Match(method, path)
}

// Authorize applies the rules in their fixed order; the first terminating
// rule decides and later rules are not consulted.
func (e *Engine) Authorize(p Principal, route *Route, params map[string]string) Decision {
	// Rule 1: public routes bypass everything.
	if route.Auth == Public {
		return allow()
	}

	// Rule 2: the banker role exists only to be blocked from the API.
	if p.Role == RoleBanker {
		return deny(ReasonRoleExcluded)
	}

	// Rule 3: ownership binding of a path parameter to the caller.
	if route.OwnershipParam != "" {
		if p.IsAdmin() {
			return allow()
		}
		id, err := strconv.ParseInt(params[route.OwnershipParam], 10, 64)
		if err == nil && id == p.UserID {
			return allow()
		}
		if len(route.RedactForeign) > 0 {
			return Decision{Allow: true, Redactions: route.RedactForeign}
		}
		return deny(ReasonNotOwner)
	}

	// Rule 4: non-admins may read and create on collection routes but never
	// update or delete.
	if route.Collection && !p.IsAdmin() {
		switch route.Method {
		case http.MethodGet, http.MethodPost:
		default:
			return deny(ReasonMethodNotAllowed)
		}
	}

	// Rule 5: default allow.
	return allow()
}
