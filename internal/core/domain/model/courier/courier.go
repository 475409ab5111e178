package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrLocationsAreRequired is returned when a courier serves no location.
	ErrLocationsAreRequired = errs.NewValueIsRequiredError("serviceableLocations")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCapacityExhausted is returned by Reserve when no daily capacity is left.
	ErrCapacityExhausted = errors.New("courier capacity exhausted")
	// ErrCourierIsInactive is returned by Reserve on a deactivated courier.
	ErrCourierIsInactive = errors.New("courier is inactive")
)

// Courier is a capacity-bounded worker serving a set of delivery locations.
//
// Business rules:
//   - dailyCapacity >= 0
//   - 0 <= currentAssignedCount <= dailyCapacity at all times
//   - only active couriers that serve a location and have spare capacity are
//     eligible for it
//   - currentAssignedCount only grows, one unit per Reserve
//
// Example:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", []kernel.Location{nyc}, 5)
//	if err != nil {
//	    return err
//	}
//	if c.IsEligibleFor(nyc) {
//	    _ = c.Reserve()
//	}
type Courier struct {
	id                   kernel.UUID
	name                 string
	serviceableLocations []kernel.Location
	dailyCapacity        int
	currentAssignedCount int
	active               bool
	guard                guard.ConstructorGuard
}

// NewCourier registers an active courier with no assigned orders.
func NewCourier(id kernel.UUID, name string, locations []kernel.Location, dailyCapacity int) (*Courier, error) {
	return RestoreCourier(id, name, locations, dailyCapacity, 0, true)
}

// RestoreCourier reconstructs a courier from storage, checking the capacity
// invariant on the persisted counters.
func RestoreCourier(
	id kernel.UUID,
	name string,
	locations []kernel.Location,
	dailyCapacity int,
	currentAssignedCount int,
	active bool,
) (*Courier, error) {
	courier := &Courier{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setServiceableLocations(locations),
		courier.setCapacity(dailyCapacity, currentAssignedCount),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// Validate reports whether the courier was built by a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

// ServiceableLocations returns a copy of the served locations.
func (c *Courier) ServiceableLocations() []kernel.Location {
	out := make([]kernel.Location, len(c.serviceableLocations))
	copy(out, c.serviceableLocations)
	return out
}

func (c *Courier) DailyCapacity() int {
	return c.dailyCapacity
}

func (c *Courier) CurrentAssignedCount() int {
	return c.currentAssignedCount
}

func (c *Courier) IsActive() bool {
	return c.active
}

// AvailableCapacity is dailyCapacity - currentAssignedCount.
func (c *Courier) AvailableCapacity() int {
	return c.dailyCapacity - c.currentAssignedCount
}

// CanServe reports whether location is among the served locations.
func (c *Courier) CanServe(location kernel.Location) bool {
	for _, l := range c.serviceableLocations {
		if l.IsEqual(location) {
			return true
		}
	}
	return false
}

// IsEligibleFor reports whether the courier could take an order in location
// right now.
func (c *Courier) IsEligibleFor(location kernel.Location) bool {
	return c.active && c.AvailableCapacity() > 0 && c.CanServe(location)
}

// Reserve claims one unit of daily capacity.
// Returns ErrCourierIsInactive or ErrCapacityExhausted without changing state.
func (c *Courier) Reserve() error {
	if !c.active {
		return ErrCourierIsInactive
	}
	if c.AvailableCapacity() <= 0 {
		return ErrCapacityExhausted
	}

	c.currentAssignedCount++
	return nil
}

// Deactivate removes the courier from eligibility; its counters are kept.
func (c *Courier) Deactivate() {
	c.active = false
}

// Activate makes a deactivated courier eligible again.
func (c *Courier) Activate() {
	c.active = true
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

// setServiceableLocations keeps the first occurrence of each location.
func (c *Courier) setServiceableLocations(locations []kernel.Location) error {
	if len(locations) == 0 {
		return ErrLocationsAreRequired
	}

	seen := make(map[kernel.Location]struct{}, len(locations))
	unique := make([]kernel.Location, 0, len(locations))
	for _, l := range locations {
		if err := l.Validate(); err != nil {
			return err
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		unique = append(unique, l)
	}

	c.serviceableLocations = unique
	return nil
}

func (c *Courier) setCapacity(dailyCapacity, currentAssignedCount int) error {
	if dailyCapacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dailyCapacity",
			fmt.Errorf("%d is negative", dailyCapacity),
		)
	}
	if currentAssignedCount < 0 || currentAssignedCount > dailyCapacity {
		return errs.NewValueIsOutOfRangeError("currentAssignedCount", currentAssignedCount, 0, dailyCapacity)
	}

	c.dailyCapacity = dailyCapacity
	c.currentAssignedCount = currentAssignedCount
	return nil
}
