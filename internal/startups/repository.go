package startups

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Startup, error)
	Catalog(ctx context.Context) ([]CatalogEntry, error)
	Get(ctx context.Context, id int64) (Startup, error)
	GetDetails(ctx context.Context, id int64) (Details, error)
	GetOwnerContact(ctx context.Context, startupID int64) (OwnerContact, error)
	HasContribution(ctx context.Context, startupID, userID int64) (bool, error)
	Create(ctx context.Context, s Startup) (Startup, error)
	Update(ctx context.Context, id int64, s Startup) error
	Delete(ctx context.Context, id int64) error
	RefreshStats(ctx context.Context, id int64) (Stats, error)
	ActiveIDs(ctx context.Context) ([]int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `startup_id, title, active_status, start_date, end_date, description,
	video_link, donated_amount, number_of_contributors, rating, type, batch,
	category_id, region_id`

func scanStartup(row interface{ Scan(...any) error }) (Startup, error) {
	var s Startup
	err := row.Scan(&s.ID, &s.Title, &s.ActiveStatus, &s.StartDate, &s.EndDate,
		&s.Description, &s.VideoLink, &s.DonatedAmount, &s.NumberOfContributors,
		&s.Rating, &s.Type, &s.Batch, &s.CategoryID, &s.RegionID)
	if err != nil {
		return Startup{}, db.MapError(err)
	}
	return s, nil
}

func (r *repository) List(ctx context.Context) ([]Startup, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM startups ORDER BY startup_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.startup_id, s.title, s.description, s.donated_amount, s.rating,
		        c.name, reg.name
		 FROM startups s
		 JOIN categories c ON c.category_id = s.category_id
		 JOIN regions reg ON reg.region_id = s.region_id
		 WHERE s.active_status = TRUE
		 ORDER BY s.rating DESC, s.startup_id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.DonatedAmount,
			&e.Rating, &e.Category, &e.Region); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Startup, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM startups WHERE startup_id = $1`, id)
	return scanStartup(row)
}

func (r *repository) GetDetails(ctx context.Context, id int64) (Details, error) {
	var d Details
	err := r.pool.QueryRow(ctx,
		`SELECT s.startup_id, s.title, s.active_status, s.start_date, s.end_date,
		        s.description, s.video_link, s.donated_amount, s.number_of_contributors,
		        s.rating, s.type, s.batch, s.category_id, s.region_id, c.name, reg.name
		 FROM startups s
		 JOIN categories c ON c.category_id = s.category_id
		 JOIN regions reg ON reg.region_id = s.region_id
		 WHERE s.startup_id = $1`, id,
	).Scan(&d.ID, &d.Title, &d.ActiveStatus, &d.StartDate, &d.EndDate,
		&d.Description, &d.VideoLink, &d.DonatedAmount, &d.NumberOfContributors,
		&d.Rating, &d.Type, &d.Batch, &d.CategoryID, &d.RegionID,
		&d.CategoryName, &d.RegionName)
	if err != nil {
		return Details{}, db.MapError(err)
	}
	return d, nil
}

func (r *repository) GetOwnerContact(ctx context.Context, startupID int64) (OwnerContact, error) {
	var c OwnerContact
	err := r.pool.QueryRow(ctx,
		`SELECT u.user_id, u.first_name, u.last_name, u.email, p.phone_number
		 FROM entrepreneurs e
		 JOIN users u ON u.entrepreneur_id = e.entrepreneur_id
		 LEFT JOIN phones p ON p.phone_id = u.phone_id
		 WHERE e.startup_id = $1`, startupID,
	).Scan(&c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber)
	if err != nil {
		return OwnerContact{}, db.MapError(err)
	}
	return c, nil
}

func (r *repository) HasContribution(ctx context.Context, startupID, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM contributions c
		   JOIN users u ON u.contributor_id = c.contributor_id
		   WHERE c.startup_id = $1 AND u.user_id = $2)`, startupID, userID,
	).Scan(&exists)
	if err != nil {
		return false, db.MapError(err)
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, s Startup) (Startup, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO startups (title, active_status, start_date, end_date, description,
		        video_link, rating, type, batch, category_id, region_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING startup_id`,
		s.Title, s.ActiveStatus, s.StartDate, s.EndDate, s.Description,
		s.VideoLink, s.Rating, s.Type, s.Batch, s.CategoryID, s.RegionID,
	).Scan(&s.ID)
	if err != nil {
		return Startup{}, db.MapError(err)
	}
	return s, nil
}

func (r *repository) Update(ctx context.Context, id int64, s Startup) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE startups
		 SET title = $1, active_status = $2, start_date = $3, end_date = $4,
		     description = $5, video_link = $6, rating = $7, type = $8, batch = $9,
		     category_id = $10, region_id = $11
		 WHERE startup_id = $12`,
		s.Title, s.ActiveStatus, s.StartDate, s.EndDate, s.Description,
		s.VideoLink, s.Rating, s.Type, s.Batch, s.CategoryID, s.RegionID, id,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM startups WHERE startup_id = $1`, id)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RefreshStats recomputes the funding aggregates from contributions and
// stores them on the startup row.
func (r *repository) RefreshStats(ctx context.Context, id int64) (Stats, error) {
	var stats Stats
	err := r.pool.QueryRow(ctx,
		`UPDATE startups s
		 SET donated_amount = agg.total, number_of_contributors = agg.backers
		 FROM (
		     SELECT COALESCE(SUM(amount), 0) AS total,
		            COUNT(DISTINCT contributor_id) AS backers
		     FROM contributions
		     WHERE startup_id = $1
		 ) agg
		 WHERE s.startup_id = $1
		 RETURNING agg.total, agg.backers`, id,
	).Scan(&stats.DonatedAmount, &stats.NumberOfContributors)
	if err != nil {
		return Stats{}, db.MapError(err)
	}
	return stats, nil
}

func (r *repository) ActiveIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT startup_id FROM startups WHERE active_status = TRUE`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
