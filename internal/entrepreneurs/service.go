package entrepreneurs

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

func (s *Service) List(ctx context.Context) ([]Entrepreneur, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Entrepreneur, error) {
	if id <= 0 {
		return Entrepreneur{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create persists the entrepreneur together with its passport, address
// and bank agreement, and links the owning user, all in one transaction.
func (s *Service) Create(ctx context.Context, input CreateInput) (Entrepreneur, error) {
	var created Entrepreneur
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		passport, err := s.identity.CreatePassport(ctx, tx, input.Passport)
		if err != nil {
			return err
		}
		address, err := s.identity.CreateAddress(ctx, tx, input.Address)
		if err != nil {
			return err
		}
		agreement, err := s.identity.CreateBankAgreement(ctx, tx, input.Agreement)
		if err != nil {
			return err
		}
		created, err = s.repo.Insert(ctx, tx, Entrepreneur{
			Gender:      input.Gender,
			DateOfBirth: input.DateOfBirth,
			PassportID:  passport.ID,
			AddressID:   address.ID,
			AgreementID: agreement.ID,
		})
		if err != nil {
			return err
		}
		return s.repo.LinkUser(ctx, tx, input.UserID, created.ID)
	})
	if err != nil {
		return Entrepreneur{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, e Entrepreneur) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Update(ctx, id, e)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
