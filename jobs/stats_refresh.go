package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dreamteam-fund/dreamteam/internal/startups"
)

// StatsRefresher handles the funding aggregate tasks.
type StatsRefresher struct {
	service *startups.Service
	logger  *slog.Logger
}

func NewStatsRefresher(service *startups.Service, logger *slog.Logger) *StatsRefresher {
	return &StatsRefresher{service: service, logger: logger}
}

// HandleRefreshStats processes TaskStartupRefreshStats tasks.
func (s *StatsRefresher) HandleRefreshStats(ctx context.Context, t *asynq.Task) error {
	var payload RefreshStatsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	stats, err := s.service.RefreshStats(ctx, payload.StartupID)
	if err != nil {
		s.logger.Error("refresh startup stats",
			slog.Int64("startup_id", payload.StartupID), slog.Any("error", err))
		return err
	}
	s.logger.Info("startup stats refreshed",
		slog.Int64("startup_id", payload.StartupID),
		slog.Float64("donated_amount", stats.DonatedAmount),
		slog.Int64("contributors", stats.NumberOfContributors))
	return nil
}

// HandleReconcileStats sweeps every active startup. Failed IDs are logged
// and skipped so one bad row does not block the sweep.
func (s *StatsRefresher) HandleReconcileStats(ctx context.Context, t *asynq.Task) error {
	var payload ReconcileStatsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	ids, err := s.service.ActiveIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := s.service.RefreshStats(ctx, id); err != nil {
			s.logger.Warn("reconcile startup stats",
				slog.Int64("startup_id", id), slog.Any("error", err))
		}
	}
	s.logger.Info("startup stats reconciled", slog.Int("count", len(ids)))
	return nil
}
