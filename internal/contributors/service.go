package contributors

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/identity"
	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Service struct {
	pool     *pgxpool.Pool
	repo     Repository
	identity *identity.Repository
}

func NewService(pool *pgxpool.Pool, repo Repository, identityRepo *identity.Repository) *Service {
	return &Service{pool: pool, repo: repo, identity: identityRepo}
}

func (s *Service) List(ctx context.Context) ([]Contributor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Contributor, error) {
	if id <= 0 {
		return Contributor{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create persists the contributor with its passport, the optional bank
// agreement, and the link back to the owning user, in one transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (Contributor, error) {
	var created Contributor
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		passport, err := s.identity.CreatePassport(ctx, tx, input.Passport)
		if err != nil {
			return err
		}
		contributor := Contributor{
			Gender:      input.Gender,
			DateOfBirth: input.DateOfBirth,
			PassportID:  passport.ID,
		}
		if input.Agreement != nil {
			agreement, err := s.identity.CreateBankAgreement(ctx, tx, *input.Agreement)
			if err != nil {
				return err
			}
			contributor.AgreementID = &agreement.ID
		}
		created, err = s.repo.Insert(ctx, tx, contributor)
		if err != nil {
			return err
		}
		return s.repo.LinkUser(ctx, tx, input.UserID, created.ID)
	})
	if err != nil {
		return Contributor{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, c Contributor) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Update(ctx, id, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
