// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with a leading seconds field.
//
// # Available Jobs
//
// 1. BulkAssignmentJob - assigns the next batch of unassigned orders, oldest first
// 2. RetryFailedJob - retries failed assignments below the retry ceiling
//
// # Usage
//
//	jobManager := jobs.NewJobManager(bulkHandler, retryHandler, jobs.Schedules{
//		Assignment: "*/30 * * * * *",
//		Retry:      "0 * * * * *",
//	}, 100, 3, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Per-order failures are part of the handler result and are only summarised
// - Rolled back passes and failed sweeps are logged as errors
// - A run that is still in progress when the next tick fires is skipped
// - Failed job starts will stop any already running jobs
package jobs
