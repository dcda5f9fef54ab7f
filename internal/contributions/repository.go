package contributions

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Contribution, error)
	ListByStartup(ctx context.Context, startupID int64) ([]Contribution, error)
	Get(ctx context.Context, id int64) (Contribution, error)
	Create(ctx context.Context, c Contribution) (Contribution, error)
	Update(ctx context.Context, id int64, c Contribution) error
	Delete(ctx context.Context, id int64) (Contribution, error)
	Summary(ctx context.Context) ([]SummaryRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `contribution_id, start_date, end_date, amount, startup_id, contributor_id`

func scanContribution(row interface{ Scan(...any) error }) (Contribution, error) {
	var c Contribution
	err := row.Scan(&c.ID, &c.StartDate, &c.EndDate, &c.Amount, &c.StartupID, &c.ContributorID)
	if err != nil {
		return Contribution{}, db.MapError(err)
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Contribution, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM contributions ORDER BY contribution_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *repository) ListByStartup(ctx context.Context, startupID int64) ([]Contribution, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM contributions WHERE startup_id = $1 ORDER BY contribution_id`,
		startupID)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]Contribution, error) {
	var out []Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Contribution, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM contributions WHERE contribution_id = $1`, id)
	return scanContribution(row)
}

func (r *repository) Create(ctx context.Context, c Contribution) (Contribution, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contributions (start_date, end_date, amount, startup_id, contributor_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING contribution_id`,
		c.StartDate, c.EndDate, c.Amount, c.StartupID, c.ContributorID,
	).Scan(&c.ID)
	if err != nil {
		return Contribution{}, db.MapError(err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, id int64, c Contribution) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contributions SET start_date = $1, end_date = $2, amount = $3
		 WHERE contribution_id = $4`,
		c.StartDate, c.EndDate, c.Amount, id,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete returns the removed row so callers can refresh the startup's
// aggregates afterwards.
func (r *repository) Delete(ctx context.Context, id int64) (Contribution, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM contributions WHERE contribution_id = $1 RETURNING `+columns, id)
	return scanContribution(row)
}

func (r *repository) Summary(ctx context.Context) ([]SummaryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.startup_id, s.title,
		        COALESCE(SUM(c.amount), 0), COUNT(DISTINCT c.contributor_id)
		 FROM startups s
		 LEFT JOIN contributions c ON c.startup_id = s.startup_id
		 GROUP BY s.startup_id, s.title
		 ORDER BY s.startup_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var row SummaryRow
		if err := rows.Scan(&row.StartupID, &row.StartupTitle, &row.TotalAmount, &row.Contributors); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
