package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/board"
	"dispatch/internal/core/application/usecases/commands"
)

// AssignmentRefreshJob re-runs the assignment on a schedule.
type AssignmentRefreshJob struct {
	handler commands.RunAssignmentCommandHandler
	job     *scheduled
}

// NewAssignmentRefreshJob creates the refresh job. An empty schedule disables it.
func NewAssignmentRefreshJob(
	handler commands.RunAssignmentCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AssignmentRefreshJob {
	return &AssignmentRefreshJob{
		handler: handler,
		job:     newScheduled("assignment_refresh_job", schedule, logger),
	}
}

// Start schedules the job.
func (j *AssignmentRefreshJob) Start() error {
	return j.job.start(j.run)
}

// Stop stops the job and waits for a running tick.
func (j *AssignmentRefreshJob) Stop() {
	j.job.stop()
}

func (j *AssignmentRefreshJob) run(ctx context.Context) {
	snapshot, err := j.handler.Handle(ctx, commands.NewRunAssignmentCommand())
	switch {
	case errors.Is(err, board.ErrRunSuperseded), errors.Is(err, context.Canceled):
		j.job.logger.DebugContext(ctx, "Assignment refresh skipped", "reason", err)
	case err != nil:
		j.job.logger.ErrorContext(ctx, "Assignment refresh failed", "error", err)
	default:
		j.job.logger.DebugContext(ctx, "Assignment refreshed",
			"run", uint64(snapshot.RunID),
			"assigned", snapshot.Result.Assignment.Len())
	}
}
