package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a unit of work awaiting a courier in one delivery location.
//
// Invariants:
//   - id and location are valid value objects
//   - value (minor currency units) is not negative
//   - status only moves Unassigned -> Assigned
type Order struct {
	id        kernel.UUID
	location  kernel.Location
	value     int64
	createdAt time.Time
	status    Status

	isConstructed bool
}

// NewOrder creates an Unassigned order.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustNewLocation("NYC"), 2599, time.Now())
func NewOrder(id kernel.UUID, location kernel.Location, value int64, createdAt time.Time) (*Order, error) {
	order := &Order{
		status:        Unassigned,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setLocation(location),
		order.setValue(value),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(
	id kernel.UUID,
	location kernel.Location,
	value int64,
	createdAt time.Time,
	status Status,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setLocation(location),
		order.setValue(value),
		order.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Location() kernel.Location {
	return o.location
}

// Value returns the order value in minor currency units.
func (o *Order) Value() int64 {
	return o.value
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

// IsUnassigned reports whether the order still waits for a courier.
func (o *Order) IsUnassigned() bool {
	return o.status == Unassigned
}

// Assign marks the order as Assigned. The matching Assignment row is owned by
// the assignment aggregate; the order only records the state change.
func (o *Order) Assign() error {
	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setValue(value int64) error {
	if value < 0 {
		return errs.NewValueIsInvalidErrorWithCause("value is invalid", fmt.Errorf("%d is negative", value))
	}
	o.value = value
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
