package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// SQLSTATE classes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// MapError translates pgx errors into the shared sentinel errors so
// handlers never inspect driver types.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return shared.ErrAlreadyExists
		case codeForeignKeyViolation:
			return shared.ErrForeignKey
		}
	}
	return err
}
