package commands

import (
	"dispatch/internal/core/domain/model/kernel"
)

// FailureKind separates per-order outcomes from a whole-call abort.
type FailureKind string

const (
	FailureKindOrder       FailureKind = "order_error"
	FailureKindTransaction FailureKind = "transaction_error"
)

// Per-order failure reasons reported in BulkAssignResult.Errors.
const (
	ReasonAlreadyAssigned     = "order already assigned"
	ReasonDuplicatePrevented  = "duplicate assignment prevented"
	ReasonNoCourierCapacity   = "no courier with available capacity"
	ReasonNoCouriersAvailable = "no available couriers for location: "
)

// AssignedOrder describes one confirmed assignment made by the call.
type AssignedOrder struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	CourierID    kernel.UUID
	CourierName  string
	Location     kernel.Location
}

// AssignmentFailure is one entry of BulkAssignResult.Errors. OrderID is the
// zero UUID for transaction errors; CourierID is set when the failure is tied
// to a specific courier.
type AssignmentFailure struct {
	Kind      FailureKind
	OrderID   kernel.UUID
	CourierID *kernel.UUID
	Reason    string
}

// BulkAssignResult is the in-memory outcome of one bulk assignment call.
// When Handle also returns an error, nothing in the result was committed.
type BulkAssignResult struct {
	TotalProcessed int
	Successful     int
	Failed         int
	Assignments    []AssignedOrder
	Errors         []AssignmentFailure
}

func newBulkAssignResult() BulkAssignResult {
	return BulkAssignResult{
		Assignments: make([]AssignedOrder, 0),
		Errors:      make([]AssignmentFailure, 0),
	}
}

func (r *BulkAssignResult) succeed(a AssignedOrder) {
	r.Successful++
	r.Assignments = append(r.Assignments, a)
}

func (r *BulkAssignResult) fail(orderID kernel.UUID, courierID *kernel.UUID, reason string) {
	r.Failed++
	r.Errors = append(r.Errors, AssignmentFailure{
		Kind:      FailureKindOrder,
		OrderID:   orderID,
		CourierID: courierID,
		Reason:    reason,
	})
}

func (r *BulkAssignResult) abort(err error) BulkAssignResult {
	r.Errors = append(r.Errors, AssignmentFailure{
		Kind:   FailureKindTransaction,
		Reason: err.Error(),
	})
	return *r
}
