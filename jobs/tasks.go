// Package jobs runs background work over Asynq: the recurring refresh of
// fleet positions into Redis.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPositionsRefresh is the task type refreshing cached device positions.
	TaskPositionsRefresh = "tracking:positions_refresh"
)

// PositionsRefreshPayload carries the identity of one refresh run.
type PositionsRefreshPayload struct {
	JobID       string    `json:"job_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewPositionsRefreshTask constructs an Asynq task for one refresh run.
func NewPositionsRefreshTask() (*asynq.Task, error) {
	data, err := json.Marshal(PositionsRefreshPayload{
		JobID:       uuid.NewString(),
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPositionsRefresh, data), nil
}

// PositionRefresher pulls the fleet and stores last known positions.
type PositionRefresher interface {
	RefreshPositions(ctx context.Context) error
}

// PositionsRefreshJob handles TaskPositionsRefresh tasks.
type PositionsRefreshJob struct {
	refresher PositionRefresher
	logger    *slog.Logger
}

// NewPositionsRefreshJob constructs the job.
func NewPositionsRefreshJob(refresher PositionRefresher, logger *slog.Logger) *PositionsRefreshJob {
	return &PositionsRefreshJob{refresher: refresher, logger: logger}
}

// Handle processes one refresh task.
func (j *PositionsRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload PositionsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	started := time.Now()
	if err := j.refresher.RefreshPositions(ctx); err != nil {
		j.logger.Error("positions refresh failed",
			slog.String("job_id", payload.JobID),
			slog.Any("error", err))
		return err
	}
	j.logger.Info("positions refresh done",
		slog.String("job_id", payload.JobID),
		slog.Duration("took", time.Since(started)))
	return nil
}
