package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's current status.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	// Returns errs.ErrObjectNotFound if the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetUnassigned returns up to limit Unassigned orders in ascending creation
	// time, optionally restricted to one location.
	GetUnassigned(ctx context.Context, limit int, location *kernel.Location) ([]*order.Order, error)

	// GetUnassignedByIDs returns the orders among ids that are still
	// Unassigned, in ascending creation time. Unknown ids are ignored.
	GetUnassignedByIDs(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)
}
