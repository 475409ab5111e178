package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// slogCronLogger routes the scheduler's own messages into slog.
type slogCronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = slogCronLogger{}

func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

// newScheduler builds a seconds-resolution cron that never overlaps runs of
// the same job and recovers from panics inside it.
func newScheduler(logger *slog.Logger) *cron.Cron {
	cl := slogCronLogger{logger: logger}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}
