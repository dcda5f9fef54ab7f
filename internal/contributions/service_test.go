package contributions

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

type memoryRepo struct {
	rows   map[int64]Contribution
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]Contribution)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Contribution, error) {
	var out []Contribution
	for _, c := range r.rows {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryRepo) ListByStartup(ctx context.Context, startupID int64) ([]Contribution, error) {
	var out []Contribution
	for _, c := range r.rows {
		if c.StartupID == startupID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (Contribution, error) {
	c, ok := r.rows[id]
	if !ok {
		return Contribution{}, shared.ErrNotFound
	}
	return c, nil
}

func (r *memoryRepo) Create(ctx context.Context, c Contribution) (Contribution, error) {
	r.nextID++
	c.ID = r.nextID
	r.rows[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, c Contribution) error {
	existing, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	existing.StartDate = c.StartDate
	existing.EndDate = c.EndDate
	existing.Amount = c.Amount
	r.rows[id] = existing
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) (Contribution, error) {
	c, ok := r.rows[id]
	if !ok {
		return Contribution{}, shared.ErrNotFound
	}
	delete(r.rows, id)
	return c, nil
}

func (r *memoryRepo) Summary(ctx context.Context) ([]SummaryRow, error) {
	return nil, nil
}

type recordingEnqueuer struct {
	startupIDs []int64
}

func (e *recordingEnqueuer) EnqueueRefreshStats(ctx context.Context, startupID int64) (*asynq.TaskInfo, error) {
	e.startupIDs = append(e.startupIDs, startupID)
	return &asynq.TaskInfo{}, nil
}

func newTestService() (*Service, *memoryRepo, *recordingEnqueuer) {
	repo := newMemoryRepo()
	enqueuer := &recordingEnqueuer{}
	return NewService(repo, enqueuer, slog.Default()), repo, enqueuer
}

func TestCreateEnqueuesStatsRefresh(t *testing.T) {
	svc, _, enqueuer := newTestService()

	created, err := svc.Create(context.Background(), Contribution{
		StartDate:     time.Now(),
		Amount:        5000,
		StartupID:     7,
		ContributorID: 3,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, []int64{7}, enqueuer.startupIDs)
}

func TestUpdateRefreshesOriginalStartup(t *testing.T) {
	svc, repo, enqueuer := newTestService()
	repo.rows[1] = Contribution{ID: 1, Amount: 100, StartupID: 9, ContributorID: 2}
	repo.nextID = 1

	err := svc.Update(context.Background(), 1, Contribution{
		StartDate: time.Now(),
		Amount:    250,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{9}, enqueuer.startupIDs)
	require.Equal(t, float64(250), repo.rows[1].Amount)
}

func TestDeleteRefreshesStartup(t *testing.T) {
	svc, repo, enqueuer := newTestService()
	repo.rows[4] = Contribution{ID: 4, Amount: 100, StartupID: 11, ContributorID: 2}

	require.NoError(t, svc.Delete(context.Background(), 4))
	require.Empty(t, repo.rows)
	require.Equal(t, []int64{11}, enqueuer.startupIDs)
}

func TestGetRejectsInvalidID(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestNilEnqueuerIsSafe(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, slog.Default())

	_, err := svc.Create(context.Background(), Contribution{
		StartDate: time.Now(), Amount: 10, StartupID: 1, ContributorID: 1,
	})
	require.NoError(t, err)
}
