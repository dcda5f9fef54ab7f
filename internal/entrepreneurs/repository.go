package entrepreneurs

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Entrepreneur, error)
	Get(ctx context.Context, id int64) (Entrepreneur, error)
	Insert(ctx context.Context, q db.Querier, e Entrepreneur) (Entrepreneur, error)
	LinkUser(ctx context.Context, q db.Querier, userID, entrepreneurID int64) error
	Update(ctx context.Context, id int64, e Entrepreneur) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `entrepreneur_id, gender, dob, passport_id, address_id, agreement_id, startup_id`

func (r *repository) List(ctx context.Context) ([]Entrepreneur, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM entrepreneurs ORDER BY entrepreneur_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []Entrepreneur
	for rows.Next() {
		var e Entrepreneur
		if err := rows.Scan(&e.ID, &e.Gender, &e.DateOfBirth, &e.PassportID,
			&e.AddressID, &e.AgreementID, &e.StartupID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Entrepreneur, error) {
	var e Entrepreneur
	err := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM entrepreneurs WHERE entrepreneur_id = $1`, id).
		Scan(&e.ID, &e.Gender, &e.DateOfBirth, &e.PassportID, &e.AddressID, &e.AgreementID, &e.StartupID)
	if err != nil {
		return Entrepreneur{}, db.MapError(err)
	}
	return e, nil
}

func (r *repository) Insert(ctx context.Context, q db.Querier, e Entrepreneur) (Entrepreneur, error) {
	err := q.QueryRow(ctx,
		`INSERT INTO entrepreneurs (gender, dob, passport_id, address_id, agreement_id, startup_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING entrepreneur_id`,
		e.Gender, e.DateOfBirth, e.PassportID, e.AddressID, e.AgreementID, e.StartupID,
	).Scan(&e.ID)
	if err != nil {
		return Entrepreneur{}, db.MapError(err)
	}
	return e, nil
}

func (r *repository) LinkUser(ctx context.Context, q db.Querier, userID, entrepreneurID int64) error {
	tag, err := q.Exec(ctx,
		`UPDATE users SET entrepreneur_id = $1, updated_at = NOW() WHERE user_id = $2`,
		entrepreneurID, userID,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id int64, e Entrepreneur) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE entrepreneurs SET gender = $1, dob = $2, startup_id = $3 WHERE entrepreneur_id = $4`,
		e.Gender, e.DateOfBirth, e.StartupID, id,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM entrepreneurs WHERE entrepreneur_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
