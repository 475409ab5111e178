package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrLocationsAreRequired   = errs.NewValueIsRequiredError("serviceable_locations")
	ErrDailyCapacityIsInvalid = errs.NewValueIsInvalidError("daily_capacity")
)

// CreateCourierCommand represents a request to register a new courier.
//
// Example:
//
//	downtown, _ := kernel.NewLocation("Downtown")
//	cmd, err := NewCreateCourierCommand("John Doe", []kernel.Location{downtown}, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create courier: %w", err)
//	}
//	fmt.Printf("Created courier with ID: %s", cmd.CourierID())
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID     kernel.UUID
	name          string
	locations     []kernel.Location
	dailyCapacity int

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Automatically generates a unique ID for the courier.
func NewCreateCourierCommand(name string, locations []kernel.Location, dailyCapacity int) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
		command.setLocations(locations),
		command.setDailyCapacity(dailyCapacity),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier name from the command.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Locations returns a copy of the serviceable locations.
func (c CreateCourierCommand) Locations() []kernel.Location {
	return append([]kernel.Location(nil), c.locations...)
}

func (c CreateCourierCommand) DailyCapacity() int {
	return c.dailyCapacity
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setLocations(locations []kernel.Location) error {
	if len(locations) == 0 {
		return ErrLocationsAreRequired
	}

	for _, loc := range locations {
		if err := loc.Validate(); err != nil {
			return err
		}
	}

	c.locations = append([]kernel.Location(nil), locations...)
	return nil
}

func (c *CreateCourierCommand) setDailyCapacity(capacity int) error {
	if capacity < 0 {
		return ErrDailyCapacityIsInvalid
	}

	c.dailyCapacity = capacity
	return nil
}
