package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// RetryCandidate is a failed assignment together with the delivery location
// of its order.
type RetryCandidate struct {
	Assignment *assignment.Assignment
	Location   kernel.Location
}

// AssignmentRepository is the assignment ledger.
type AssignmentRepository interface {
	// Add inserts a new assignment. Returns ErrDuplicateAssignment when a
	// confirmed assignment already exists for the same order.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists status, retry count, courier and error message.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// HasConfirmed reports whether orderID already has a confirmed assignment.
	HasConfirmed(ctx context.Context, orderID kernel.UUID) (bool, error)

	// FindFailedByOrder returns the most recent failed assignment of orderID.
	// Returns errs.ErrObjectNotFound when there is none.
	FindFailedByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// RecordFailure increments the retry count of a failed assignment and
	// stores message, in a single statement.
	RecordFailure(ctx context.Context, id kernel.UUID, message string) error

	// GetFailedBelowRetryCeiling lists failed assignments with
	// retry_count < ceiling whose order has no confirmed assignment, oldest
	// first.
	GetFailedBelowRetryCeiling(ctx context.Context, ceiling int) ([]RetryCandidate, error)
}

// AuditLog is the append-only assignment audit trail.
type AuditLog interface {
	Append(ctx context.Context, entry assignment.LogEntry) error
}
