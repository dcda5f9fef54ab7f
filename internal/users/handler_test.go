package users

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam-fund/dreamteam/internal/auth"
	"github.com/dreamteam-fund/dreamteam/internal/identity"
	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type memoryRepo struct {
	users    map[int64]User
	profiles map[int64]Profile
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, p UpdateParams) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	u.FirstName, u.LastName, u.Email, u.PhoneID = p.FirstName, p.LastName, p.Email, p.PhoneID
	r.users[id] = u
	return u, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryRepo) GetProfile(ctx context.Context, id int64) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, shared.ErrNotFound
	}
	return p, nil
}

func profileRouter(repo *memoryRepo, decision policy.Decision) http.Handler {
	handler := NewHandler(slog.Default(), NewService(repo), nil)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.ContextWithDecision(req.Context(), decision)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/users", handler.MountRoutes)
	return r
}

func sampleProfile() Profile {
	return Profile{
		User: User{
			ID:        7,
			FirstName: "Aziz",
			LastName:  "Karimov",
			Email:     "aziz@example.com",
		},
		Phone: &ProfilePhone{CountryCode: "998", MobileOperatorCode: "90", PhoneNumber: "1234567"},
		Entrepreneur: &ProfileEntrepreneur{
			ID:         5,
			Gender:     "male",
			Passport:   &identity.Passport{ID: 12, Series: "AB", Number: "1234567"},
			Address:    &identity.Address{ID: 9, City: "Tashkent", Country: "UZ"},
			StartupIDs: []int64{21},
		},
		Contributor: &ProfileContributor{
			ID:              3,
			Gender:          "male",
			Passport:        &identity.Passport{ID: 12, Series: "AB", Number: "1234567"},
			ContributionIDs: []int64{100, 101},
		},
	}
}

func TestProfileOwnerSeesEverything(t *testing.T) {
	repo := &memoryRepo{profiles: map[int64]Profile{7: sampleProfile()}}
	router := profileRouter(repo, policy.Decision{Allow: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7/profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "aziz@example.com", body["email"])
	require.Equal(t, "Karimov", body["last_name"])
	require.Contains(t, body, "phone")

	entrepreneur, ok := body["entrepreneur"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, entrepreneur, "passport")
	require.Contains(t, entrepreneur, "address")
	require.Equal(t, []any{float64(21)}, entrepreneur["startup_ids"])

	contributor, ok := body["contributor"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, contributor, "passport")
	require.Equal(t, []any{float64(100), float64(101)}, contributor["contribution_ids"])
}

func TestProfileForeignCallerGetsRedactedView(t *testing.T) {
	repo := &memoryRepo{profiles: map[int64]Profile{7: sampleProfile()}}
	router := profileRouter(repo, policy.Decision{
		Allow:      true,
		Redactions: policy.ProfileRedactions,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7/profile", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Aziz", body["first_name"])
	require.Equal(t, "K.", body["last_name"])
	require.NotContains(t, body, "email")
	require.NotContains(t, body, "phone")
	require.NotContains(t, body, "entrepreneur")
	require.NotContains(t, body, "contributor")
	require.Equal(t, []any{float64(21)}, body["startup_ids"])
}

func TestProfileUnknownUser(t *testing.T) {
	repo := &memoryRepo{profiles: map[int64]Profile{}}
	router := profileRouter(repo, policy.Decision{Allow: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/99/profile", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser(t *testing.T) {
	repo := &memoryRepo{users: map[int64]User{
		7: {ID: 7, FirstName: "Aziz", LastName: "Karimov", Email: "aziz@example.com", Role: "user"},
	}}
	router := profileRouter(repo, policy.Decision{Allow: true})

	req := httptest.NewRequest(http.MethodPut, "/users/7",
		strings.NewReader(`{"first_name":"Aziz","last_name":"Rashidov","email":"aziz@example.com"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Rashidov", repo.users[7].LastName)
}
