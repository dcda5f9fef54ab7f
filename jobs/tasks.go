package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStartupRefreshStats recomputes funding aggregates for one startup.
	TaskStartupRefreshStats = "startup:refresh_stats"
	// TaskStartupReconcileStats sweeps every active startup nightly.
	TaskStartupReconcileStats = "startup:reconcile_stats"
)

// RefreshStatsPayload names the startup whose aggregates changed.
type RefreshStatsPayload struct {
	StartupID int64 `json:"startup_id"`
}

// NewRefreshStatsTask constructs the per-startup refresh task.
func NewRefreshStatsTask(startupID int64) (*asynq.Task, error) {
	data, err := json.Marshal(RefreshStatsPayload{StartupID: startupID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStartupRefreshStats, data, asynq.Queue(QueueDefault)), nil
}

// ReconcileStatsPayload carries scheduling metadata.
type ReconcileStatsPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewReconcileStatsTask constructs the nightly reconcile task.
func NewReconcileStatsTask(at time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(ReconcileStatsPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStartupReconcileStats, data, asynq.Queue(QueueDefault)), nil
}
