package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const (
	assignAttemptSavePoint = "assign_attempt"
	auditSavePoint         = "audit_append"
)

type attemptOutcome int

const (
	attemptAssigned attemptOutcome = iota
	attemptExhausted
	attemptSkipped
	attemptDuplicate
)

// BulkAssignCommandHandler matches unassigned orders to couriers in one
// transaction per call.
//
// Orders are grouped by location; within a group each order walks the ranked
// courier snapshot and takes the first courier whose reservation succeeds
// under the row lock. Capacity, duplicate and no-courier conditions become
// entries of the result. Any other error rolls the whole call back and is
// returned together with the partial, uncommitted result.
//
// Example:
//
//	handler := NewBulkAssignCommandHandler(uowFactory, logger)
//	cmd, _ := NewBulkAssignCommand(nil, 100)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("bulk assignment rolled back: %w", err)
//	}
//	fmt.Printf("%d of %d orders assigned\n", result.Successful, result.TotalProcessed)
type BulkAssignCommandHandler struct {
	uowFactory UoWFactory
	grouper    services.OrderGrouper
	ranker     services.CourierRanker
	logger     *slog.Logger
	now        func() time.Time
}

// NewBulkAssignCommandHandler creates a handler for bulk assignment.
func NewBulkAssignCommandHandler(uowFactory UoWFactory, logger *slog.Logger) *BulkAssignCommandHandler {
	return &BulkAssignCommandHandler{
		uowFactory: uowFactory,
		grouper:    services.NewOrderGrouper(),
		ranker:     services.NewCourierRanker(),
		logger:     logger.With("component", "bulk_assign"),
		now:        time.Now,
	}
}

// Handle runs one bulk assignment pass.
func (h *BulkAssignCommandHandler) Handle(ctx context.Context, cmd BulkAssignCommand) (BulkAssignResult, error) {
	result := newBulkAssignResult()
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result.abort(err), err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := h.fetchOrders(ctx, uow, cmd)
	if err != nil {
		return h.abort(ctx, &result, err)
	}
	if len(orders) == 0 {
		return result, nil
	}

	for _, group := range h.grouper.Group(orders) {
		if err = h.assignGroup(ctx, uow, group, &result); err != nil {
			return h.abort(ctx, &result, err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return h.abort(ctx, &result, err)
	}

	h.logger.InfoContext(ctx, "bulk assignment committed",
		"total", result.TotalProcessed,
		"successful", result.Successful,
		"failed", result.Failed,
	)

	return result, nil
}

func (h *BulkAssignCommandHandler) abort(
	ctx context.Context,
	result *BulkAssignResult,
	err error,
) (BulkAssignResult, error) {
	h.logger.ErrorContext(ctx, "bulk assignment rolled back",
		"error", err,
		"processed", result.TotalProcessed,
	)
	return result.abort(err), err
}

func (h *BulkAssignCommandHandler) fetchOrders(
	ctx context.Context,
	uow UoW,
	cmd BulkAssignCommand,
) ([]*order.Order, error) {
	if cmd.HasExplicitOrders() {
		return uow.OrderRepository().GetUnassignedByIDs(ctx, cmd.OrderIDs())
	}

	return uow.OrderRepository().GetUnassigned(ctx, cmd.BatchSize(), nil)
}

func (h *BulkAssignCommandHandler) assignGroup(
	ctx context.Context,
	uow UoW,
	group services.LocationGroup,
	result *BulkAssignResult,
) error {
	result.TotalProcessed += len(group.Orders)

	snapshot, err := uow.CourierRepository().GetEligibleForLocation(ctx, group.Location, 0)
	if err != nil {
		return err
	}

	ranked := h.ranker.Rank(group.Location, snapshot)
	if len(ranked) == 0 {
		for _, o := range group.Orders {
			result.fail(o.ID(), nil, ReasonNoCouriersAvailable+group.Location.Name())
		}
		return nil
	}

	cache := services.NewCapacityCache()
	cache.Seed(ranked)

	for _, o := range group.Orders {
		if err = h.assignOrder(ctx, uow, o, ranked, cache, result); err != nil {
			return err
		}
	}

	return nil
}

func (h *BulkAssignCommandHandler) assignOrder(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	ranked []*courier.Courier,
	cache *services.CapacityCache,
	result *BulkAssignResult,
) error {
	confirmed, err := uow.AssignmentRepository().HasConfirmed(ctx, o.ID())
	if err != nil {
		return err
	}
	if confirmed {
		result.fail(o.ID(), nil, ReasonAlreadyAssigned)
		return nil
	}

	for _, c := range ranked {
		if !cache.HasCapacity(c.ID()) {
			continue
		}

		outcome, created, attemptErr := h.tryCourier(ctx, uow, o, c)
		if attemptErr != nil {
			return attemptErr
		}

		switch outcome {
		case attemptAssigned:
			cache.Consume(c.ID())
			result.succeed(AssignedOrder{
				AssignmentID: created.ID(),
				OrderID:      o.ID(),
				CourierID:    c.ID(),
				CourierName:  c.Name(),
				Location:     o.Location(),
			})
			return nil
		case attemptExhausted:
			cache.MarkExhausted(c.ID())
		case attemptDuplicate:
			courierID := c.ID()
			result.fail(o.ID(), &courierID, ReasonDuplicatePrevented)
			return nil
		case attemptSkipped:
		}
	}

	result.fail(o.ID(), nil, ReasonNoCourierCapacity)
	return h.recordUnassigned(ctx, uow, o, ranked[0])
}

// tryCourier reserves one unit on c and writes the confirmed assignment.
// Everything it does is undone through the savepoint when the attempt does
// not end in attemptAssigned.
func (h *BulkAssignCommandHandler) tryCourier(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	c *courier.Courier,
) (attemptOutcome, *assignment.Assignment, error) {
	if err := uow.SavePoint(ctx, assignAttemptSavePoint); err != nil {
		return 0, nil, err
	}

	err := uow.CourierRepository().ReserveCapacity(ctx, c.ID())
	switch {
	case err == nil:
	case errors.Is(err, courier.ErrCapacityExhausted):
		return h.undoAttempt(ctx, uow, attemptExhausted)
	case errors.Is(err, ports.ErrLockWaitTimeout):
		h.logger.WarnContext(ctx, "courier lock wait timed out",
			"courier_id", c.ID().String(),
			"order_id", o.ID().String(),
		)
		return h.undoAttempt(ctx, uow, attemptSkipped)
	case errors.Is(err, errs.ErrObjectNotFound):
		return h.undoAttempt(ctx, uow, attemptSkipped)
	default:
		return 0, nil, err
	}

	created, err := assignment.NewConfirmed(o.ID(), c.ID(), h.now())
	if err != nil {
		return 0, nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, created); err != nil {
		if errors.Is(err, ports.ErrDuplicateAssignment) {
			return h.undoAttempt(ctx, uow, attemptDuplicate)
		}
		return 0, nil, err
	}

	if err = o.Assign(); err != nil {
		return 0, nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return 0, nil, err
	}

	appendAudit(ctx, uow, h.logger, created.ID(), assignment.ActionAssigned, map[string]any{
		"order_id":   o.ID().String(),
		"courier_id": c.ID().String(),
		"location":   o.Location().Name(),
	}, h.now())

	return attemptAssigned, created, nil
}

func (h *BulkAssignCommandHandler) undoAttempt(
	ctx context.Context,
	uow UoW,
	outcome attemptOutcome,
) (attemptOutcome, *assignment.Assignment, error) {
	if err := uow.RollbackTo(ctx, assignAttemptSavePoint); err != nil {
		return 0, nil, err
	}

	return outcome, nil, nil
}

// recordUnassigned keeps one failed ledger row per order so the retry sweep
// can pick it up. The row points at the best-ranked courier of the snapshot.
func (h *BulkAssignCommandHandler) recordUnassigned(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	top *courier.Courier,
) error {
	ledger := uow.AssignmentRepository()
	now := h.now()

	existing, err := ledger.FindFailedByOrder(ctx, o.ID())
	switch {
	case err == nil:
		if err = existing.Refresh(top.ID(), ReasonNoCourierCapacity, now); err != nil {
			return err
		}
		if err = ledger.Update(ctx, existing); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		existing, err = assignment.NewFailed(o.ID(), top.ID(), ReasonNoCourierCapacity, now)
		if err != nil {
			return err
		}
		if err = ledger.Add(ctx, existing); err != nil {
			return err
		}
	default:
		return err
	}

	appendAudit(ctx, uow, h.logger, existing.ID(), assignment.ActionAssignFailed, map[string]any{
		"order_id": o.ID().String(),
		"reason":   ReasonNoCourierCapacity,
	}, now)

	return nil
}

// auditUoW is the slice of a unit of work the audit helper needs.
type auditUoW interface {
	SavePointer
	AssignmentRepoFactory
}

// appendAudit writes an audit row without letting its failure reach the
// caller. Inside a transaction the write is fenced by a savepoint so a failed
// insert does not poison the enclosing transaction.
func appendAudit(
	ctx context.Context,
	uow auditUoW,
	logger *slog.Logger,
	assignmentID kernel.UUID,
	action assignment.Action,
	details map[string]any,
	now time.Time,
) {
	entry, err := assignment.NewLogEntry(assignmentID, action, details, now)
	if err != nil {
		logger.WarnContext(ctx, "audit entry dropped", "action", string(action), "error", err)
		return
	}

	if err = uow.SavePoint(ctx, auditSavePoint); err != nil {
		logger.WarnContext(ctx, "audit entry dropped", "action", string(action), "error", err)
		return
	}

	if err = uow.AuditLog().Append(ctx, entry); err != nil {
		logger.WarnContext(ctx, "audit entry dropped",
			"action", string(action),
			"assignment_id", assignmentID.String(),
			"error", err,
		)
		_ = uow.RollbackTo(ctx, auditSavePoint)
	}
}
