package main

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam-fund/dreamteam/internal/policy"
)

type execCall struct {
	sql  string
	args []any
}

type recordingQuerier struct {
	calls []execCall
}

func (q *recordingQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (q *recordingQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (q *recordingQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (q *recordingQuerier) statementFor(role string) (string, bool) {
	for _, c := range q.calls {
		if len(c.args) == 1 && c.args[0] == role {
			return c.sql, true
		}
	}
	return "", false
}

func TestBackfillMapsNegativeIDToAdmin(t *testing.T) {
	q := &recordingQuerier{}
	_, err := backfillRoles(context.Background(), q)
	require.NoError(t, err)

	adminSQL, ok := q.statementFor(string(policy.RoleAdmin))
	require.True(t, ok)
	require.Contains(t, adminSQL, "legacy_id < 0")
	require.Contains(t, adminSQL, "is_admin = TRUE")
}

func TestBackfillBankerNeverFromAdminSentinel(t *testing.T) {
	q := &recordingQuerier{}
	_, err := backfillRoles(context.Background(), q)
	require.NoError(t, err)

	bankerSQL, ok := q.statementFor(string(policy.RoleBanker))
	require.True(t, ok)
	require.Contains(t, bankerSQL, "is_banker = TRUE")
	require.Contains(t, bankerSQL, "legacy_id >= 0")
	require.False(t, strings.Contains(bankerSQL, "legacy_id < 0"))
}

func TestBackfillDefaultsRemainingRowsToUser(t *testing.T) {
	q := &recordingQuerier{}
	res, err := backfillRoles(context.Background(), q)
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Users)

	userSQL, ok := q.statementFor(string(policy.RoleUser))
	require.True(t, ok)
	require.Contains(t, userSQL, "role IS NULL OR role = ''")
}
