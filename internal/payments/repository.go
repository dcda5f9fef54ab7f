package payments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByTransaction(ctx context.Context, transactionID string) (Payment, error)
	UpdateState(ctx context.Context, transactionID, state string) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const columns = `payment_id, transaction_id, contribution_id, amount, state, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p Payment) (Payment, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (transaction_id, contribution_id, amount, state)
		 VALUES ($1, $2, $3, $4)
		 RETURNING payment_id, created_at, updated_at`,
		p.TransactionID, p.ContributionID, p.Amount, p.State,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Payment{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) GetByTransaction(ctx context.Context, transactionID string) (Payment, error) {
	var p Payment
	err := r.pool.QueryRow(ctx,
		`SELECT `+columns+` FROM payments WHERE transaction_id = $1`, transactionID,
	).Scan(&p.ID, &p.TransactionID, &p.ContributionID, &p.Amount, &p.State, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Payment{}, db.MapError(err)
	}
	return p, nil
}

func (r *repository) UpdateState(ctx context.Context, transactionID, state string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET state = $1, updated_at = NOW() WHERE transaction_id = $2`,
		state, transactionID,
	)
	if err != nil {
		return db.MapError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
