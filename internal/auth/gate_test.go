package auth_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
	_ "github.com/dreamteam-fund/dreamteam/testing"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

type stubRepo struct {
	users map[int64]*auth.User
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRepo) Create(ctx context.Context, user *auth.User) (int64, error) {
	return 0, nil
}

type gateFixture struct {
	gate    *auth.Gate
	issuer  *auth.TokenIssuer
	repo    *stubRepo
	handled bool
	// principal seen by the downstream handler
	principal policy.Principal
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	table, err := policy.NewTable(policy.DefaultRoutes())
	require.NoError(t, err)

	f := &gateFixture{
		issuer: auth.NewTokenIssuer("jwtsecret", time.Hour),
		repo:   &stubRepo{users: make(map[int64]*auth.User)},
	}
	verifier := auth.NewVerifier("api", "secretpass", "jwtsecret", nil)
	f.gate = auth.NewGate(verifier, auth.NewResolver(f.repo), policy.NewEngine(table), nil)
	return f
}

func (f *gateFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	f.handled = false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.handled = true
		f.principal = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	res := httptest.NewRecorder()
	f.gate.Middleware(next).ServeHTTP(res, req)
	return res
}

func (f *gateFixture) addUser(u *auth.User) {
	f.repo.users[u.ID] = u
}

func (f *gateFixture) bearerFor(t *testing.T, u *auth.User) string {
	t.Helper()
	token, _, err := f.issuer.Issue(u)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGatePublicRouteNeedsNoCredential(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	res := f.serve(req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, f.handled)
	assert.True(t, f.principal.IsAnonymous())
}

func TestGateMissingBasicRejectsWithChallenge(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/startups/1", nil)
	res := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, `Basic realm="Restricted Area"`, res.Header().Get("WWW-Authenticate"))
	assert.False(t, f.handled, "handler must never run on rejection")
	assert.Contains(t, res.Body.String(), "MISSING_CREDENTIAL")
}

func TestGateInvalidBasicRejects(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/startups/1", nil)
	req.Header.Set("Authorization", basicHeader("api", "wrong"))
	res := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, `Basic realm="Restricted Area"`, res.Header().Get("WWW-Authenticate"))
	assert.False(t, f.handled)
	assert.Contains(t, res.Body.String(), "INVALID_CREDENTIAL")
}

func TestGateBearerMandatoryOnProtectedRoutes(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/startups/1", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass"))
	res := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, f.handled)
}

func TestGateBearerExemptRouteAllowsBasicOnly(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/contributions/summary", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass"))
	res := f.serve(req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, f.handled)
	assert.True(t, f.principal.IsAnonymous())
}

func TestGateCombinedAuthorizationHeader(t *testing.T) {
	f := newGateFixture(t)
	user := &auth.User{ID: 5, Email: "u@x.dev", Role: "user"}
	f.addUser(user)

	req := httptest.NewRequest(http.MethodGet, "/startups/1", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+f.bearerFor(t, user))
	res := f.serve(req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, f.handled)
	assert.Equal(t, int64(5), f.principal.UserID)
	assert.Equal(t, policy.RoleUser, f.principal.Role)
}

func TestGateResolvesDeletedUserAsUnknown(t *testing.T) {
	f := newGateFixture(t)
	user := &auth.User{ID: 5, Email: "u@x.dev", Role: "user"}
	// Token issued while the account existed, record deleted afterwards.
	token := f.bearerFor(t, user)

	req := httptest.NewRequest(http.MethodGet, "/startups/1", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+token)
	res := f.serve(req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "UNKNOWN_USER")
	assert.False(t, f.handled)
}

func TestGateRoleComesFromStoreNotToken(t *testing.T) {
	f := newGateFixture(t)
	// Token claims say admin, but the stored record was demoted.
	token := f.bearerFor(t, &auth.User{ID: 5, Role: "admin"})
	f.addUser(&auth.User{ID: 5, Email: "u@x.dev", Role: "user"})

	req := httptest.NewRequest(http.MethodDelete, "/startups/1", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+token)
	res := f.serve(req)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Contains(t, res.Body.String(), policy.ReasonMethodNotAllowed)
	assert.False(t, f.handled)
}

func TestGateBankerForbiddenEverywhere(t *testing.T) {
	f := newGateFixture(t)
	banker := &auth.User{ID: 8, Email: "b@x.dev", Role: "banker"}
	f.addUser(banker)
	token := f.bearerFor(t, banker)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/startups/1"},
		{http.MethodPost, "/contributions"},
		{http.MethodGet, "/users/8"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+token)
		res := f.serve(req)

		assert.Equal(t, http.StatusForbidden, res.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, res.Body.String(), policy.ReasonRoleExcluded)
		assert.False(t, f.handled)
	}
}

func TestGateOwnershipEnforced(t *testing.T) {
	f := newGateFixture(t)
	user := &auth.User{ID: 7, Email: "u@x.dev", Role: "user"}
	admin := &auth.User{ID: 1, Email: "a@x.dev", Role: "admin"}
	f.addUser(user)
	f.addUser(admin)

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+f.bearerFor(t, user))
	res := f.serve(req)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Contains(t, res.Body.String(), policy.ReasonNotOwner)

	req = httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+f.bearerFor(t, user))
	res = f.serve(req)
	assert.Equal(t, http.StatusOK, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+f.bearerFor(t, admin))
	res = f.serve(req)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestGateAttachesRedactionDecision(t *testing.T) {
	f := newGateFixture(t)
	user := &auth.User{ID: 7, Email: "u@x.dev", Role: "user"}
	f.addUser(user)

	var decision policy.Decision
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision = auth.DecisionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42/profile", nil)
	req.Header.Set("Authorization", basicHeader("api", "secretpass")+", "+f.bearerFor(t, user))
	res := httptest.NewRecorder()
	f.gate.Middleware(next).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.ElementsMatch(t, policy.ProfileRedactions, decision.Redactions)
}
