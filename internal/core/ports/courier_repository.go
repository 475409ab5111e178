package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates,
// including the capacity reservation primitive.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by identifier, active or not.
	// Returns errs.ErrObjectNotFound if the courier does not exist.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetEligibleForLocation returns active couriers serving location with
	// spare capacity, ranked by available capacity descending then current
	// load ascending. limit <= 0 means no limit. The result is a snapshot.
	GetEligibleForLocation(ctx context.Context, location kernel.Location, limit int) ([]*courier.Courier, error)

	// ReserveCapacity locks the courier row for the rest of the enclosing
	// transaction, re-reads its capacity and claims one unit.
	//
	// Returns:
	//   - nil when one unit was claimed
	//   - courier.ErrCapacityExhausted when no capacity was left under the lock
	//   - errs.ErrObjectNotFound when the courier is missing or inactive
	//   - ErrLockWaitTimeout when the lock wait exceeded its bound
	//   - any other error for infrastructure faults
	ReserveCapacity(ctx context.Context, id kernel.UUID) error
}
