package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FailedRetrier runs one retry sweep over failed assignments.
type FailedRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryFailedCommand) (commands.RetryResult, error)
}

// RetryFailedJob periodically promotes failed assignments whose courier has
// regained capacity.
type RetryFailedJob struct {
	handler  FailedRetrier
	schedule string
	ceiling  int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRetryFailedJob creates the job. A ceiling of 0 selects the default.
func NewRetryFailedJob(handler FailedRetrier, schedule string, ceiling int, logger *slog.Logger) *RetryFailedJob {
	logger = logger.With("component", "retry_failed_job")
	return &RetryFailedJob{
		handler:  handler,
		schedule: schedule,
		ceiling:  ceiling,
		cron:     newScheduler(logger),
		logger:   logger,
	}
}

func (j *RetryFailedJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Retry job started", "schedule", j.schedule)
	return nil
}

func (j *RetryFailedJob) Run(ctx context.Context) {
	cmd, err := commands.NewRetryFailedCommand(j.ceiling)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retry job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Retry job failed", "error", err)
		return
	}
	if result.Retried == 0 && result.StillFailed == 0 {
		return
	}

	j.logger.InfoContext(ctx, "Retry job finished",
		"retried", result.Retried,
		"still_failed", result.StillFailed,
	)
}

func (j *RetryFailedJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Retry job stopped")
}
