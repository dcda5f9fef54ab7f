package phones

import (
	"context"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Phone, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Phone, error) {
	if id <= 0 {
		return Phone{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, phone Phone) (Phone, error) {
	return s.repo.Create(ctx, phone)
}

func (s *Service) Update(ctx context.Context, id int64, phone Phone) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Update(ctx, id, phone)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
