package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderValueIsInvalid = errs.NewValueIsInvalidError("order_value")
)

// CreateOrderCommand represents a request to register a new unassigned order.
//
// Example:
//
//	loc, _ := kernel.NewLocation("Downtown")
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), loc, 2599, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	location  kernel.Location
	value     int64
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order data. A zero createdAt means now.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	location kernel.Location,
	value int64,
	createdAt time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	orderCommand.createdAt = createdAt

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setLocation(location),
		orderCommand.setValue(value),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Location returns the delivery location.
func (c CreateOrderCommand) Location() kernel.Location {
	return c.location
}

// Value returns the order value in minor currency units.
func (c CreateOrderCommand) Value() int64 {
	return c.value
}

func (c CreateOrderCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *CreateOrderCommand) setValue(value int64) error {
	if value < 0 {
		return ErrOrderValueIsInvalid
	}

	c.value = value
	return nil
}
