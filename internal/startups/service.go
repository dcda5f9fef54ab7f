package startups

import (
	"context"
	"errors"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Startup, error) {
	return s.repo.List(ctx)
}

func (s *Service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	return s.repo.Catalog(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Startup, error) {
	if id <= 0 {
		return Startup{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// GetDetails returns the enriched startup view. The founder contact
// block is attached only when the viewer is the founder, an admin, or
// has contributed to this startup.
func (s *Service) GetDetails(ctx context.Context, id int64, viewer Viewer) (Details, error) {
	if id <= 0 {
		return Details{}, shared.ErrNotFound
	}
	details, err := s.repo.GetDetails(ctx, id)
	if err != nil {
		return Details{}, err
	}

	contact, err := s.repo.GetOwnerContact(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		// Startup has no linked founder yet.
		return details, nil
	}
	if err != nil {
		return Details{}, err
	}

	allowed := viewer.Admin || contact.UserID == viewer.UserID
	if !allowed {
		allowed, err = s.repo.HasContribution(ctx, id, viewer.UserID)
		if err != nil {
			return Details{}, err
		}
	}
	if allowed {
		details.Owner = &contact
	}
	return details, nil
}

func (s *Service) Create(ctx context.Context, startup Startup) (Startup, error) {
	return s.repo.Create(ctx, startup)
}

func (s *Service) Update(ctx context.Context, id int64, startup Startup) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Update(ctx, id, startup)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// RefreshStats recomputes funding aggregates for one startup. Called by
// the background worker after contributions change.
func (s *Service) RefreshStats(ctx context.Context, id int64) (Stats, error) {
	if id <= 0 {
		return Stats{}, shared.ErrNotFound
	}
	return s.repo.RefreshStats(ctx, id)
}

// ActiveIDs lists startups still raising, for the nightly reconcile pass.
func (s *Service) ActiveIDs(ctx context.Context) ([]int64, error) {
	return s.repo.ActiveIDs(ctx)
}
