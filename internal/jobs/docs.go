// Package jobs provides scheduled background tasks of the assignment service.
//
// Jobs are built on github.com/robfig/cron/v3. Schedules accept standard
// five-field expressions, an optional leading seconds field, and descriptors
// such as "@every 5m". An empty schedule disables the job.
//
// # Available Jobs
//
//  1. AssignmentRefreshJob - re-runs the assignment so the board follows new orders
//  2. AssignmentExportJob - delivers the published assignment to the export sink
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(runHandler, exportHandler, jobs.Schedules{
//		Refresh: "@every 5m",
//		Export:  "0 18 * * *",
//	}, logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Expected outcomes (superseded run, nothing to export) are logged at debug level
//   - A tick is skipped while the previous tick of the same job still runs
//   - Stop cancels the context of a tick in progress and waits for it to return
package jobs
