package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockBulkAssigner struct {
	mock.Mock
}

func (m *MockBulkAssigner) Handle(ctx context.Context, cmd commands.BulkAssignCommand) (commands.BulkAssignResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.BulkAssignResult), args.Error(1)
}

type MockRetrier struct {
	mock.Mock
}

func (m *MockRetrier) Handle(ctx context.Context, cmd commands.RetryFailedCommand) (commands.RetryResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RetryResult), args.Error(1)
}

func TestBulkAssignmentJob_Run_RequestsNextBatch(t *testing.T) {
	handler := new(MockBulkAssigner)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkAssignCommand) bool {
		return !cmd.HasExplicitOrders() && cmd.BatchSize() == 25
	})).Return(commands.BulkAssignResult{TotalProcessed: 3, Successful: 3}, nil).Once()

	job := jobs.NewBulkAssignmentJob(handler, "* * * * * *", 25, discardLogger)
	job.Run(context.Background())

	handler.AssertExpectations(t)
}

func TestBulkAssignmentJob_Run_DefaultBatchSize(t *testing.T) {
	handler := new(MockBulkAssigner)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.BulkAssignCommand) bool {
		return cmd.BatchSize() == commands.DefaultBatchSize
	})).Return(commands.BulkAssignResult{}, nil).Once()

	jobs.NewBulkAssignmentJob(handler, "* * * * * *", 0, discardLogger).Run(context.Background())

	handler.AssertExpectations(t)
}

func TestBulkAssignmentJob_Run_LogsRollback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := new(MockBulkAssigner)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.BulkAssignResult{}, errors.New("connection refused")).Once()

	jobs.NewBulkAssignmentJob(handler, "* * * * * *", 10, logger).Run(context.Background())

	assert.Contains(t, buf.String(), "Bulk assignment job failed")
	assert.Contains(t, buf.String(), "connection refused")
	assert.Contains(t, buf.String(), "component=bulk_assignment_job")
}

func TestRetryFailedJob_Run(t *testing.T) {
	t.Run("uses configured ceiling", func(t *testing.T) {
		handler := new(MockRetrier)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RetryFailedCommand) bool {
			return cmd.Ceiling() == 5
		})).Return(commands.RetryResult{Retried: 1}, nil).Once()

		jobs.NewRetryFailedJob(handler, "* * * * * *", 5, discardLogger).Run(context.Background())

		handler.AssertExpectations(t)
	})

	t.Run("negative ceiling never reaches the handler", func(t *testing.T) {
		handler := new(MockRetrier)

		jobs.NewRetryFailedJob(handler, "* * * * * *", -1, discardLogger).Run(context.Background())

		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestBulkAssignmentJob_Start_InvalidSchedule(t *testing.T) {
	job := jobs.NewBulkAssignmentJob(new(MockBulkAssigner), "every tuesday", 10, discardLogger)

	require.Error(t, job.Start())
}

func TestBulkAssignmentJob_StartFiresOnSchedule(t *testing.T) {
	fired := make(chan struct{}, 1)
	handler := new(MockBulkAssigner)
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			select {
			case fired <- struct{}{}:
			default:
			}
		}).
		Return(commands.BulkAssignResult{}, nil)

	job := jobs.NewBulkAssignmentJob(handler, "* * * * * *", 10, discardLogger)
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}
}

func TestJobManager_StartAll_RollsBackOnBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(
		new(MockBulkAssigner),
		new(MockRetrier),
		jobs.Schedules{Assignment: "0 0 1 1 1 *", Retry: "not a schedule"},
		10,
		3,
		discardLogger,
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(
		new(MockBulkAssigner),
		new(MockRetrier),
		jobs.Schedules{Assignment: "0 0 1 1 1 *", Retry: "0 0 1 1 1 *"},
		10,
		3,
		discardLogger,
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
