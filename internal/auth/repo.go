package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
)

// Repository defines the persistence operations the auth module needs. The
// gate itself only ever calls FindByID.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (int64, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `user_id, first_name, last_name, email, password_hash, role, phone_id, entrepreneur_id, contributor_id, created_at, updated_at`

func (r *PGRepository) scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &u.PhoneID, &u.EntrepreneurID, &u.ContributorID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &u, nil
}

// FindByID fetches a user by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return r.scanUser(row)
}

// FindByEmail fetches a user by email for login.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return r.scanUser(row)
}

// Create inserts a new user account.
func (r *PGRepository) Create(ctx context.Context, user *User) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, role, phone_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING user_id`,
		user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role, user.PhoneID,
	).Scan(&id)
	if err != nil {
		return 0, db.MapError(err)
	}
	return id, nil
}

var _ Repository = (*PGRepository)(nil)
