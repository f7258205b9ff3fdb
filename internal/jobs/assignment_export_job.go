package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// AssignmentExportJob delivers the published assignment to the export sink on
// a schedule.
type AssignmentExportJob struct {
	handler commands.ExportAssignmentsCommandHandler
	job     *scheduled
}

// NewAssignmentExportJob creates the export job. An empty schedule disables it.
func NewAssignmentExportJob(
	handler commands.ExportAssignmentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *AssignmentExportJob {
	return &AssignmentExportJob{
		handler: handler,
		job:     newScheduled("assignment_export_job", schedule, logger),
	}
}

// Start schedules the job.
func (j *AssignmentExportJob) Start() error {
	return j.job.start(j.run)
}

// Stop stops the job and waits for a running tick.
func (j *AssignmentExportJob) Stop() {
	j.job.stop()
}

func (j *AssignmentExportJob) run(ctx context.Context) {
	err := j.handler.Handle(ctx, commands.NewExportAssignmentsCommand())
	switch {
	case errors.Is(err, commands.ErrNothingToExport):
		j.job.logger.DebugContext(ctx, "Nothing to export")
	case err != nil:
		j.job.logger.ErrorContext(ctx, "Assignment export failed", "error", err)
	}
}
