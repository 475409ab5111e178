package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BulkAssigner runs one bulk assignment pass.
type BulkAssigner interface {
	Handle(ctx context.Context, cmd commands.BulkAssignCommand) (commands.BulkAssignResult, error)
}

// BulkAssignmentJob periodically assigns the next batch of unassigned orders.
type BulkAssignmentJob struct {
	handler   BulkAssigner
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewBulkAssignmentJob creates the job. schedule is a six-field cron
// expression; batchSize <= 0 selects commands.DefaultBatchSize.
func NewBulkAssignmentJob(handler BulkAssigner, schedule string, batchSize int, logger *slog.Logger) *BulkAssignmentJob {
	if batchSize <= 0 {
		batchSize = commands.DefaultBatchSize
	}
	logger = logger.With("component", "bulk_assignment_job")
	return &BulkAssignmentJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      newScheduler(logger),
		logger:    logger,
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *BulkAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Bulk assignment job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run executes a single pass. Per-order failures are already part of the
// result; only a rolled back call is logged as an error.
func (j *BulkAssignmentJob) Run(ctx context.Context) {
	cmd, err := commands.NewBulkAssignCommand(nil, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Bulk assignment job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Bulk assignment job failed", "error", err)
		return
	}
	if result.TotalProcessed == 0 {
		return
	}

	j.logger.InfoContext(ctx, "Bulk assignment job finished",
		"processed", result.TotalProcessed,
		"successful", result.Successful,
		"failed", result.Failed,
	)
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *BulkAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Bulk assignment job stopped")
}
