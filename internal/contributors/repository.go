package contributors

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Contributor, error)
	Get(ctx context.Context, id int64) (Contributor, error)
	Insert(ctx context.Context, q db.Querier, c Contributor) (Contributor, error)
	LinkUser(ctx context.Context, q db.Querier, userID, contributorID int64) error
	Update(ctx context.Context, id int64, c Contributor) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `contributor_id, gender, dob, passport_id, agreement_id`

func (r *repository) List(ctx context.Context) ([]Contributor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM contributors ORDER BY contributor_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []Contributor
	for rows.Next() {
		var c Contributor
		if err := rows.Scan(&c.ID, &c.Gender, &c.DateOfBirth, &c.PassportID, &c.AgreementID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Contributor, error) {
	var c Contributor
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM contributors WHERE contributor_id = $1`, id).
		Scan(&c.ID, &c.Gender, &c.DateOfBirth, &c.PassportID, &c.AgreementID)
	if err != nil {
		return Contributor{}, db.MapError(err)
	}
	return c, nil
}

func (r *repository) Insert(ctx context.Context, q db.Querier, c Contributor) (Contributor, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO contributors (gender, dob, passport_id, agreement_id)
		 VALUES ($1, $2, $3, $4) RETURNING contributor_id`,
		c.Gender, c.DateOfBirth, c.PassportID, c.AgreementID,
	).Scan(&c.ID)
	if err != nil {
		return Contributor{}, db.MapError(err)
	}
	return c, nil
}

func (r *repository) LinkUser(ctx context.Context, q db.Querier, userID, contributorID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE users SET contributor_id = $1, updated_at = NOW() WHERE user_id = $2`,
		contributorID, userID,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id int64, c Contributor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contributors SET gender = $1, dob = $2 WHERE contributor_id = $3`,
		c.Gender, c.DateOfBirth, id,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contributors WHERE contributor_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
