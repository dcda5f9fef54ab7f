package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/dreamteam-fund/dreamteam/internal/identity"
	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	Get(ctx context.Context, id int64) (User, error)
	Update(ctx context.Context, id int64, u UpdateParams) (User, error)
	Delete(ctx context.Context, id int64) error
	GetProfile(ctx context.Context, id int64) (Profile, error)
}

// UpdateParams carries the mutable account fields.
type UpdateParams struct {
	FirstName string
	LastName  string
	Email     string
	PhoneID   *int64
}

type repository struct {
	pool     *pgxpool.Pool
	identity *identity.Repository
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool, identity: identity.NewRepository()}
}

const userColumns = `user_id, first_name, last_name, email, password_hash, role,
	phone_id, entrepreneur_id, contributor_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &u.PhoneID, &u.EntrepreneurID, &u.ContributorID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, db.MapError(err)
	}
	return u, nil
}

func (r *repository) Get(ctx context.Context, id int64) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *repository) Update(ctx context.Context, id int64, p UpdateParams) (User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, email = $3, phone_id = $4, updated_at = NOW()
		 WHERE user_id = $5
		 RETURNING `+userColumns,
		p.FirstName, p.LastName, p.Email, p.PhoneID, id,
	)
	return scanUser(row)
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetProfile loads the account and its linked records. The three lookups
// are independent, so they run concurrently. A dangling link is treated as
// absent rather than an error.
func (r *repository) GetProfile(ctx context.Context, id int64) (Profile, error) {
	user, err := r.Get(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{User: user}
	g, ctx := errgroup.WithContext(ctx)

	if user.PhoneID != nil {
		g.Go(func() error {
			var phone ProfilePhone
			err := r.pool.QueryRow(ctx,
				`SELECT country_code, mobile_operator_code, phone_number
				 FROM phones WHERE phone_id = $1`, *user.PhoneID,
			).Scan(&phone.CountryCode, &phone.MobileOperatorCode, &phone.PhoneNumber)
			if err == nil {
				profile.Phone = &phone
				return nil
			}
			return ignoreNotFound(err)
		})
	}

	if user.EntrepreneurID != nil {
		g.Go(func() error {
			block, err := r.entrepreneurBlock(ctx, *user.EntrepreneurID)
			if err == nil {
				profile.Entrepreneur = block
				return nil
			}
			return ignoreNotFound(err)
		})
	}

	if user.ContributorID != nil {
		g.Go(func() error {
			block, err := r.contributorBlock(ctx, *user.ContributorID)
			if err == nil {
				profile.Contributor = block
				return nil
			}
			return ignoreNotFound(err)
		})
	}

	if err := g.Wait(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// entrepreneurBlock assembles the KYC documents and founded startups
// linked to the entrepreneur record.
func (r *repository) entrepreneurBlock(ctx context.Context, id int64) (*ProfileEntrepreneur, error) {
	block := ProfileEntrepreneur{}
	var passportID, addressID int64
	var startupID *int64
	err := r.pool.QueryRow(ctx,
		`SELECT entrepreneur_id, gender, passport_id, address_id, startup_id
		 FROM entrepreneurs WHERE entrepreneur_id = $1`, id,
	).Scan(&block.ID, &block.Gender, &passportID, &addressID, &startupID)
	if err != nil {
		return nil, err
	}

	if passport, err := r.identity.GetPassport(ctx, r.pool, passportID); err == nil {
		block.Passport = &passport
	} else if ignored := ignoreNotFound(err); ignored != nil {
		return nil, ignored
	}
	if address, err := r.identity.GetAddress(ctx, r.pool, addressID); err == nil {
		block.Address = &address
	} else if ignored := ignoreNotFound(err); ignored != nil {
		return nil, ignored
	}
	if startupID != nil {
		block.StartupIDs = []int64{*startupID}
	}
	return &block, nil
}

// contributorBlock assembles the passport and contribution history
// linked to the contributor record.
func (r *repository) contributorBlock(ctx context.Context, id int64) (*ProfileContributor, error) {
	block := ProfileContributor{}
	var passportID int64
	err := r.pool.QueryRow(ctx,
		`SELECT contributor_id, gender, passport_id
		 FROM contributors WHERE contributor_id = $1`, id,
	).Scan(&block.ID, &block.Gender, &passportID)
	if err != nil {
		return nil, err
	}

	if passport, err := r.identity.GetPassport(ctx, r.pool, passportID); err == nil {
		block.Passport = &passport
	} else if ignored := ignoreNotFound(err); ignored != nil {
		return nil, ignored
	}

	rows, err := r.pool.Query(ctx,
		`SELECT contribution_id FROM contributions WHERE contributor_id = $1 ORDER BY contribution_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var contributionID int64
		if err := rows.Scan(&contributionID); err != nil {
			return nil, err
		}
		block.ContributionIDs = append(block.ContributionIDs, contributionID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &block, nil
}

func ignoreNotFound(err error) error {
	if mapped := db.MapError(err); !errors.Is(mapped, shared.ErrNotFound) {
		return mapped
	}
	return nil
}
