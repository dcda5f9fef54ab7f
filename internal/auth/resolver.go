package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// Resolver turns verified token claims into a Principal. One read against
// the store per request, no side effects.
type Resolver struct {
	repo Repository
}

// NewResolver constructs a Resolver.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve loads the user the claims reference. The role and the
// entrepreneur/contributor links come from the stored record, not from the
// token, so a stale token cannot outlive a role change.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) (policy.Principal, error) {
	user, err := r.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return policy.Principal{}, ErrUnknownUser
		}
		return policy.Principal{}, fmt.Errorf("auth: resolve user %d: %w", claims.UserID, err)
	}
	return policy.Principal{
		UserID:         user.ID,
		Role:           policy.ParseRole(user.Role),
		EntrepreneurID: user.EntrepreneurID,
		ContributorID:  user.ContributorID,
	}, nil
}
