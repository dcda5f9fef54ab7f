package phones

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Phone, error)
	Get(ctx context.Context, id int64) (Phone, error)
	Create(ctx context.Context, phone Phone) (Phone, error)
	Update(ctx context.Context, id int64, phone Phone) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const phoneColumns = `phone_id, country_code, mobile_operator_code, phone_number`

func (r *repository) List(ctx context.Context) ([]Phone, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+phoneColumns+` FROM phones ORDER BY phone_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []Phone
	for rows.Next() {
		var p Phone
		if err := rows.Scan(&p.ID, &p.CountryCode, &p.MobileOperatorCode, &p.PhoneNumber); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Phone, error) {
	var p Phone
	err := r.pool.QueryRow(ctx, `SELECT `+phoneColumns+` FROM phones WHERE phone_id = $1`, id).
		Scan(&p.ID, &p.CountryCode, &p.MobileOperatorCode, &p.PhoneNumber)
	if err != nil {
		return Phone{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, phone Phone) (Phone, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO phones (country_code, mobile_operator_code, phone_number)
		 VALUES ($1, $2, $3) RETURNING phone_id`,
		phone.CountryCode, phone.MobileOperatorCode, phone.PhoneNumber,
	).Scan(&phone.ID)
	if err != nil {
		return Phone{}, db.MapError(err)
	}
	return phone, nil
}

func (r *repository) Update(ctx context.Context, id int64, phone Phone) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE phones SET country_code = $1, mobile_operator_code = $2, phone_number = $3
		 WHERE phone_id = $4`,
		phone.CountryCode, phone.MobileOperatorCode, phone.PhoneNumber, id,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM phones WHERE phone_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
