package regions

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Region, error)
	Get(ctx context.Context, id int64) (Region, error)
	Create(ctx context.Context, region Region) (Region, error)
	Update(ctx context.Context, id int64, region Region) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Region, error) {
	rows, err := r.pool.Query(ctx, `SELECT region_id, name FROM regions ORDER BY name`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []Region
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Region, error) {
	var reg Region
	err := r.pool.QueryRow(ctx, `SELECT region_id, name FROM regions WHERE region_id = $1`, id).
		Scan(&reg.ID, &reg.Name)
	if err != nil {
		return Region{}, db.MapError(err)
	}
	return reg, nil
}

func (r *repository) Create(ctx context.Context, region Region) (Region, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO regions (name) VALUES ($1) RETURNING region_id`,
		region.Name,
	).Scan(&region.ID)
	if err != nil {
		return Region{}, db.MapError(err)
	}
	return region, nil
}

func (r *repository) Update(ctx context.Context, id int64, region Region) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE regions SET name = $1 WHERE region_id = $2`,
		region.Name, id,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM regions WHERE region_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
