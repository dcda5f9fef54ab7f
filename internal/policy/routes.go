package policy

import (
	"fmt"
	"strings"
)

// AuthRequirement states which credentials a route demands.
type AuthRequirement int

const (
	// Public routes bypass every check.
	Public AuthRequirement = iota
	// BasicOnly routes are bearer-exempt: the app credential suffices.
	BasicOnly
	// BasicAndBearer routes require the app credential plus a user token.
	BasicAndBearer
)

// Route is a static descriptor for one (method, pattern) pair. The table is
// compiled once at startup and read-only afterwards.
type Route struct {
	Method  string
	Pattern string
	Auth    AuthRequirement

	// OwnershipParam names the path parameter that must equal the caller's
	// user id unless the caller is an admin.
	OwnershipParam string

	// RedactForeign lists fields withheld from callers who are neither the
	// owner (per OwnershipParam) nor an admin, on routes that stay readable.
	RedactForeign []string

	// Collection marks routes subject to the non-admin method restriction:
	// GET and POST pass, PUT/PATCH/DELETE are denied.
	Collection bool
}

type compiledRoute struct {
	Route
	segments []string
}

// Table holds the compiled route set. Matching is exact per segment; there
// is no prefix matching, so /users/register and /users/{id} cannot shadow
// each other.
type Table struct {
	routes []compiledRoute
}

// NewTable compiles and validates the route set.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{routes: make([]compiledRoute, 0, len(routes))}
	seen := make(map[string]string, len(routes))
	for _, r := range routes {
		if r.Method == "" || !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("policy: invalid route %s %q", r.Method, r.Pattern)
		}
		segs := splitPath(r.Pattern)
		key := r.Method + " " + canonicalKey(segs)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("policy: route %s %q overlaps %q", r.Method, r.Pattern, prev)
		}
		seen[key] = r.Pattern
		t.routes = append(t.routes, compiledRoute{Route: r, segments: segs})
	}
	return t, nil
}

// Match finds the descriptor for a request and extracts path parameters.
// Literal segments win over parameter segments, so GET /startups/catalog
// matches its own descriptor rather than /startups/{id}.
func (t *Table) Match(method, path string) (*Route, map[string]string, bool) {
	segs := splitPath(path)
	var (
		best      *compiledRoute
		bestScore = -1
	)
	for i := range t.routes {
		r := &t.routes[i]
		if r.Method != method || len(r.segments) != len(segs) {
			continue
		}
		score, ok := matchSegments(r.segments, segs)
		if ok && score > bestScore {
			best = r
			bestScore = score
		}
	}
	if best == nil {
		return nil, nil, false
	}
	params := make(map[string]string)
	for i, s := range best.segments {
		if name, ok := paramName(s); ok {
			params[name] = segs[i]
		}
	}
	return &best.Route, params, true
}

func matchSegments(pattern, actual []string) (int, bool) {
	score := 0
	for i, s := range pattern {
		if _, ok := paramName(s); ok {
			continue
		}
		if s != actual[i] {
			return 0, false
		}
		score++
	}
	return score, true
}

func paramName(segment string) (string, bool) {
	if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

func canonicalKey(segments []string) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		if _, ok := paramName(s); ok {
			parts[i] = "*"
		} else {
			parts[i] = s
		}
	}
	return "/" + strings.Join(parts, "/")
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
