package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	Assignment string
	Retry      string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	bulkAssignmentJob *BulkAssignmentJob
	retryFailedJob    *RetryFailedJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	bulkAssigner BulkAssigner,
	retrier FailedRetrier,
	schedules Schedules,
	batchSize int,
	retryCeiling int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		bulkAssignmentJob: NewBulkAssignmentJob(bulkAssigner, schedules.Assignment, batchSize, logger),
		retryFailedJob:    NewRetryFailedJob(retrier, schedules.Retry, retryCeiling, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.bulkAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start bulk assignment job: %w", err)
	}

	if err := jm.retryFailedJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.bulkAssignmentJob.Stop()
		return fmt.Errorf("failed to start retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retryFailedJob.Stop()
	jm.bulkAssignmentJob.Stop()
}
