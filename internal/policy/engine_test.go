package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	table, err := NewTable(DefaultRoutes())
	require.NoError(t, err)
	return NewEngine(table)
}

func mustMatch(t *testing.T, e *Engine, method, path string) (*Route, map[string]string) {
	t.Helper()
	route, params, ok := e.Match(method, path)
	require.True(t, ok, "no route for %s %s", method, path)
	return route, params
}

func TestPublicRoutesBypassChecks(t *testing.T) {
	e := newTestEngine(t)
	for _, path := range []string{"/users/register", "/users/login"} {
		route, params := mustMatch(t, e, http.MethodPost, path)
		decision := e.Authorize(Anonymous(), route, params)
		assert.True(t, decision.Allow, path)
	}

	route, params := mustMatch(t, e, http.MethodGet, "/startups/catalog")
	assert.True(t, e.Authorize(Anonymous(), route, params).Allow)
}

func TestBankerDeniedEverywhere(t *testing.T) {
	e := newTestEngine(t)
	banker := Principal{UserID: 9, Role: RoleBanker}

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/startups/1"},
		{http.MethodPost, "/contributions"},
		{http.MethodGet, "/users/9"},
		{http.MethodDelete, "/phones/3"},
		{http.MethodGet, "/contributions/summary"},
	}
	for _, tc := range cases {
		route, params := mustMatch(t, e, tc.method, tc.path)
		decision := e.Authorize(banker, route, params)
		assert.False(t, decision.Allow, "%s %s", tc.method, tc.path)
		assert.Equal(t, ReasonRoleExcluded, decision.Reason)
	}
}

func TestOwnershipRule(t *testing.T) {
	e := newTestEngine(t)
	route, params := mustMatch(t, e, http.MethodGet, "/users/42")

	other := Principal{UserID: 7, Role: RoleUser}
	decision := e.Authorize(other, route, params)
	assert.False(t, decision.Allow)
	assert.Equal(t, ReasonNotOwner, decision.Reason)

	owner := Principal{UserID: 42, Role: RoleUser}
	assert.True(t, e.Authorize(owner, route, params).Allow)

	admin := Principal{UserID: 1, Role: RoleAdmin}
	assert.True(t, e.Authorize(admin, route, params).Allow)
}

func TestOwnershipRuleDecidesBeforeMethodRestriction(t *testing.T) {
	e := newTestEngine(t)
	route, params := mustMatch(t, e, http.MethodPut, "/users/42")

	// A user may update their own record even though PUT is blocked for
	// non-admins on plain collection routes.
	owner := Principal{UserID: 42, Role: RoleUser}
	assert.True(t, e.Authorize(owner, route, params).Allow)

	other := Principal{UserID: 7, Role: RoleUser}
	decision := e.Authorize(other, route, params)
	assert.False(t, decision.Allow)
	assert.Equal(t, ReasonNotOwner, decision.Reason)
}

func TestMethodRestrictionForNonAdmins(t *testing.T) {
	e := newTestEngine(t)
	user := Principal{UserID: 5, Role: RoleUser}
	admin := Principal{UserID: 1, Role: RoleAdmin}

	route, params := mustMatch(t, e, http.MethodPut, "/startups/1")
	decision := e.Authorize(user, route, params)
	assert.False(t, decision.Allow)
	assert.Equal(t, ReasonMethodNotAllowed, decision.Reason)
	assert.True(t, e.Authorize(admin, route, params).Allow)

	route, params = mustMatch(t, e, http.MethodDelete, "/startups/1")
	assert.False(t, e.Authorize(user, route, params).Allow)

	route, params = mustMatch(t, e, http.MethodGet, "/startups/1")
	assert.True(t, e.Authorize(user, route, params).Allow)

	route, params = mustMatch(t, e, http.MethodPost, "/startups")
	assert.True(t, e.Authorize(user, route, params).Allow)
}

func TestProfileRedactionForForeignCaller(t *testing.T) {
	e := newTestEngine(t)
	route, params := mustMatch(t, e, http.MethodGet, "/users/42/profile")

	owner := Principal{UserID: 42, Role: RoleUser}
	decision := e.Authorize(owner, route, params)
	assert.True(t, decision.Allow)
	assert.Empty(t, decision.Redactions)

	other := Principal{UserID: 7, Role: RoleUser}
	decision = e.Authorize(other, route, params)
	assert.True(t, decision.Allow)
	assert.ElementsMatch(t, ProfileRedactions, decision.Redactions)

	admin := Principal{UserID: 3, Role: RoleAdmin}
	decision = e.Authorize(admin, route, params)
	assert.True(t, decision.Allow)
	assert.Empty(t, decision.Redactions)
}

func TestJobsHealthRouteIsRegistered(t *testing.T) {
	e := newTestEngine(t)

	route, _, ok := e.Match(http.MethodGet, "/jobs/health")
	require.True(t, ok)
	assert.Equal(t, BasicAndBearer, route.Auth)
}

func TestLiteralSegmentsWinOverParams(t *testing.T) {
	e := newTestEngine(t)

	route, _, ok := e.Match(http.MethodGet, "/startups/catalog")
	require.True(t, ok)
	assert.Equal(t, Public, route.Auth)

	route, params, ok := e.Match(http.MethodGet, "/startups/7")
	require.True(t, ok)
	assert.Equal(t, BasicAndBearer, route.Auth)
	assert.Equal(t, "7", params["id"])

	// Register must never be shadowed by the protected item route.
	route, _, ok = e.Match(http.MethodPost, "/users/register")
	require.True(t, ok)
	assert.Equal(t, Public, route.Auth)
}

func TestTableRejectsOverlaps(t *testing.T) {
	_, err := NewTable([]Route{
		{Method: http.MethodGet, Pattern: "/users/{id}"},
		{Method: http.MethodGet, Pattern: "/users/{uid}"},
	})
	require.Error(t, err)
}

func TestParseRoleDefaultsToUser(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleBanker, ParseRole("banker"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole(""))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
}
