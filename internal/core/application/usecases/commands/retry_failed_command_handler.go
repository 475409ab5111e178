package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	ErrCourierNotFound       = errors.New("courier not found")
	ErrCourierOutOfArea      = errors.New("courier no longer serves the order location")
	ErrOrderAlreadyConfirmed = errors.New(ReasonAlreadyAssigned)
	ErrDuplicatePrevented    = errors.New(ReasonDuplicatePrevented)
)

// RetryResult counts the outcome of one retry sweep.
type RetryResult struct {
	Retried     int
	StillFailed int
}

// RetryFailedCommandHandler promotes failed assignments whose courier has
// regained capacity. Each candidate runs in its own transaction. A failed
// attempt is rolled back and then counted against the assignment outside that
// transaction, so the bookkeeping survives the rollback.
type RetryFailedCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

// NewRetryFailedCommandHandler creates a handler for retry sweeps.
func NewRetryFailedCommandHandler(uowFactory UoWFactory, logger *slog.Logger) *RetryFailedCommandHandler {
	return &RetryFailedCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "retry_failed"),
		now:        time.Now,
	}
}

// Handle runs one sweep. The returned error is set only when the scan itself
// or the failure bookkeeping could not be written.
func (h *RetryFailedCommandHandler) Handle(ctx context.Context, cmd RetryFailedCommand) (RetryResult, error) {
	var result RetryResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	candidates, err := h.uowFactory.Create().AssignmentRepository().GetFailedBelowRetryCeiling(ctx, cmd.Ceiling())
	if err != nil {
		return result, err
	}

	for _, candidate := range candidates {
		retryErr := h.retry(ctx, candidate)
		if retryErr == nil {
			result.Retried++
			continue
		}

		result.StillFailed++
		if err = h.recordFailure(ctx, candidate.Assignment, retryErr); err != nil {
			return result, err
		}
	}

	if len(candidates) > 0 {
		h.logger.InfoContext(ctx, "retry sweep finished",
			"retried", result.Retried,
			"still_failed", result.StillFailed,
		)
	}

	return result, nil
}

func (h *RetryFailedCommandHandler) retry(ctx context.Context, candidate ports.RetryCandidate) error {
	failed := candidate.Assignment

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, failed.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrCourierNotFound
	}
	if err != nil {
		return err
	}
	if !c.IsActive() {
		return ErrCourierNotFound
	}
	if !c.CanServe(candidate.Location) {
		return ErrCourierOutOfArea
	}

	confirmed, err := uow.AssignmentRepository().HasConfirmed(ctx, failed.OrderID())
	if err != nil {
		return err
	}
	if confirmed {
		return ErrOrderAlreadyConfirmed
	}

	if err = uow.CourierRepository().ReserveCapacity(ctx, c.ID()); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrCourierNotFound
		}
		return err
	}

	now := h.now()
	if err = failed.Promote(now); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, failed); err != nil {
		if errors.Is(err, ports.ErrDuplicateAssignment) {
			return ErrDuplicatePrevented
		}
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, failed.OrderID())
	if err != nil {
		return err
	}

	if err = o.Assign(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	appendAudit(ctx, uow, h.logger, failed.ID(), assignment.ActionRetryConfirmed, map[string]any{
		"order_id":    failed.OrderID().String(),
		"courier_id":  c.ID().String(),
		"retry_count": failed.RetryCount(),
	}, now)

	return uow.Commit(ctx)
}

// recordFailure runs without a transaction: each statement commits on its own.
func (h *RetryFailedCommandHandler) recordFailure(
	ctx context.Context,
	failed *assignment.Assignment,
	cause error,
) error {
	message := failureMessage(cause)
	h.logger.InfoContext(ctx, "retry attempt failed",
		"assignment_id", failed.ID().String(),
		"retry_count", failed.RetryCount()+1,
		"error", message,
	)

	uow := h.uowFactory.Create()
	if err := uow.AssignmentRepository().RecordFailure(ctx, failed.ID(), message); err != nil {
		return err
	}

	entry, err := assignment.NewLogEntry(failed.ID(), assignment.ActionRetryFailed, map[string]any{
		"order_id":    failed.OrderID().String(),
		"error":       message,
		"retry_count": failed.RetryCount() + 1,
	}, h.now())
	if err == nil {
		err = uow.AuditLog().Append(ctx, entry)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "audit entry dropped",
			"action", string(assignment.ActionRetryFailed),
			"assignment_id", failed.ID().String(),
			"error", err,
		)
	}

	return nil
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, courier.ErrCapacityExhausted):
		return courier.ErrCapacityExhausted.Error()
	case errors.Is(err, ports.ErrLockWaitTimeout):
		return ports.ErrLockWaitTimeout.Error()
	default:
		return err.Error()
	}
}
