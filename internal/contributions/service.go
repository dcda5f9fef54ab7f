package contributions

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

// StatsEnqueuer schedules a funding aggregate refresh after a write.
// Satisfied by jobs.Client; nil disables enqueueing in tests.
type StatsEnqueuer interface {
	EnqueueRefreshStats(ctx context.Context, startupID int64) (*asynq.TaskInfo, error)
}

type Service struct {
	repo     Repository
	enqueuer StatsEnqueuer
	logger   *slog.Logger
}

func NewService(repo Repository, enqueuer StatsEnqueuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Contribution, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByStartup(ctx context.Context, startupID int64) ([]Contribution, error) {
	if startupID <= 0 {
		return nil, shared.ErrNotFound
	}
	return s.repo.ListByStartup(ctx, startupID)
}

func (s *Service) Get(ctx context.Context, id int64) (Contribution, error) {
	if id <= 0 {
		return Contribution{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Contribution) (Contribution, error) {
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return Contribution{}, err
	}
	s.scheduleRefresh(ctx, created.StartupID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, c Contribution) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, c); err != nil {
		return err
	}
	s.scheduleRefresh(ctx, existing.StartupID)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.scheduleRefresh(ctx, deleted.StartupID)
	return nil
}

func (s *Service) Summary(ctx context.Context) ([]SummaryRow, error) {
	return s.repo.Summary(ctx)
}

// NotifyPaid schedules a funding-stats refresh for the startup backing
// the contribution. Payment webhooks call it after a paid transition.
func (s *Service) NotifyPaid(ctx context.Context, contributionID int64) {
	contribution, err := s.repo.Get(ctx, contributionID)
	if err != nil {
		s.logger.Warn("resolve paid contribution",
			slog.Int64("contribution_id", contributionID), slog.Any("error", err))
		return
	}
	s.scheduleRefresh(ctx, contribution.StartupID)
}

// scheduleRefresh is best effort. The nightly reconcile sweep picks up
// anything the queue missed.
func (s *Service) scheduleRefresh(ctx context.Context, startupID int64) {
	if s.enqueuer == nil {
		return
	}
	if _, err := s.enqueuer.EnqueueRefreshStats(ctx, startupID); err != nil {
		s.logger.Warn("enqueue stats refresh",
			slog.Int64("startup_id", startupID), slog.Any("error", err))
	}
}
