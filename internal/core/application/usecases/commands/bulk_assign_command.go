package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultBatchSize is used by callers that do not choose a batch size.
const DefaultBatchSize = 100

var (
	ErrBulkAssignCommandIsNotConstructed = errors.New(
		"BulkAssignCommand must be created via NewBulkAssignCommand constructor",
	)
	ErrOrderIDsAreEmpty   = errs.NewValueIsRequiredError("order_ids")
	ErrBatchSizeIsInvalid = errs.NewValueIsInvalidError("batch_size")
)

// BulkAssignCommand asks for one bulk assignment pass.
// With explicit order IDs only those orders are considered; otherwise the
// next batchSize unassigned orders are fetched, oldest first.
//
// Example:
//
//	cmd, err := NewBulkAssignCommand(nil, 100)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type BulkAssignCommand struct { //nolint:recvcheck //using for validation
	orderIDs  []kernel.UUID
	batchSize int

	guard guard.ConstructorGuard
}

// NewBulkAssignCommand validates the request. A nil orderIDs slice selects the
// next batch; a non-nil empty slice is rejected. Repeated IDs are collapsed
// keeping their first position.
func NewBulkAssignCommand(orderIDs []kernel.UUID, batchSize int) (BulkAssignCommand, error) {
	command := BulkAssignCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderIDs(orderIDs),
		command.setBatchSize(batchSize),
	); err != nil {
		return BulkAssignCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkAssignCommand) Validate() error {
	return c.guard.Validate(ErrBulkAssignCommandIsNotConstructed)
}

// OrderIDs returns the explicit order selection, or nil for "next batch".
func (c BulkAssignCommand) OrderIDs() []kernel.UUID {
	if c.orderIDs == nil {
		return nil
	}
	return append([]kernel.UUID(nil), c.orderIDs...)
}

// HasExplicitOrders reports whether the caller named the orders.
func (c BulkAssignCommand) HasExplicitOrders() bool {
	return c.orderIDs != nil
}

func (c BulkAssignCommand) BatchSize() int {
	return c.batchSize
}

func (c *BulkAssignCommand) setOrderIDs(ids []kernel.UUID) error {
	if ids == nil {
		return nil
	}
	if len(ids) == 0 {
		return ErrOrderIDsAreEmpty
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order_ids", err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	c.orderIDs = unique
	return nil
}

func (c *BulkAssignCommand) setBatchSize(size int) error {
	if size <= 0 {
		return ErrBatchSizeIsInvalid
	}

	c.batchSize = size
	return nil
}
