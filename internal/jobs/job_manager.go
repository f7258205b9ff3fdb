package jobs

import (
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// Schedules holds the cron expression of every job. Empty disables a job.
type Schedules struct {
	Refresh string
	Export  string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	refreshJob *AssignmentRefreshJob
	exportJob  *AssignmentExportJob
}

// NewJobManager creates a new job manager with all required jobs.
// It fails when a schedule cannot be parsed.
func NewJobManager(
	runHandler commands.RunAssignmentCommandHandler,
	exportHandler commands.ExportAssignmentsCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) (*JobManager, error) {
	if err := errors.Join(
		wrapSchedule("refresh", ValidateSchedule(schedules.Refresh)),
		wrapSchedule("export", ValidateSchedule(schedules.Export)),
	); err != nil {
		return nil, err
	}

	return &JobManager{
		refreshJob: NewAssignmentRefreshJob(runHandler, schedules.Refresh, logger),
		exportJob:  NewAssignmentExportJob(exportHandler, schedules.Export, logger),
	}, nil
}

func wrapSchedule(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("invalid %s schedule: %w", name, err)
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.refreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment refresh job: %w", err)
	}

	if err := jm.exportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.refreshJob.Stop()
		return fmt.Errorf("failed to start assignment export job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.exportJob.Stop()
	jm.refreshJob.Stop()
}
