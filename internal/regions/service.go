package regions

import (
	"context"
	"strings"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Region, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Region, error) {
	if id <= 0 {
		return Region{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, region Region) (Region, error) {
	region.Name = strings.TrimSpace(region.Name)
	return s.repo.Create(ctx, region)
}

func (s *Service) Update(ctx context.Context, id int64, region Region) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	region.Name = strings.TrimSpace(region.Name)
	return s.repo.Update(ctx, id, region)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
