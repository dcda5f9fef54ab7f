// Command migrate-roles backfills the users.role column from the legacy
// encodings: rows marked is_admin or carrying the negative-id admin
// sentinel become admin, rows marked is_banker become banker, everything
// else stays user. Safe to re-run.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dreamteam-fund/dreamteam/internal/app"
	"github.com/dreamteam-fund/dreamteam/internal/platform/db"
	"github.com/dreamteam-fund/dreamteam/internal/policy"
)

type backfillResult struct {
	Admins  int64
	Bankers int64
	Users   int64
}

// backfillRoles collapses the legacy role encodings into the explicit
// role column. Both historical admin conventions map to admin; banker
// only ever comes from its own flag, never from the admin sentinel.
func backfillRoles(ctx context.Context, q db.Querier) (backfillResult, error) {
	var res backfillResult

	bankers, err := q.Exec(ctx,
		`UPDATE users SET role = $1
		 WHERE is_banker = TRUE AND is_admin = FALSE AND legacy_id >= 0 AND role <> $1`,
		string(policy.RoleBanker))
	if err != nil {
		return res, err
	}
	res.Bankers = bankers.RowsAffected()

	admins, err := q.Exec(ctx,
		`UPDATE users SET role = $1
		 WHERE (is_admin = TRUE OR legacy_id < 0) AND role <> $1`,
		string(policy.RoleAdmin))
	if err != nil {
		return res, err
	}
	res.Admins = admins.RowsAffected()

	rest, err := q.Exec(ctx,
		`UPDATE users SET role = $1 WHERE role IS NULL OR role = ''`,
		string(policy.RoleUser))
	if err != nil {
		return res, err
	}
	res.Users = rest.RowsAffected()

	return res, nil
}

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	res, err := backfillRoles(ctx, pool)
	if err != nil {
		logger.Error("migrate roles", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("role migration complete",
		slog.Int64("admins", res.Admins),
		slog.Int64("bankers", res.Bankers),
		slog.Int64("users", res.Users))
}
