package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
		"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
	)
	ErrCourierLimitIsInvalid = errs.NewValueIsInvalidError("limit")
)

// GetAvailableCouriersQuery lists the couriers that could take an order in a
// location right now, in the order the assignment engine would try them.
//
// Example:
//
//	query, err := NewGetAvailableCouriersQuery(kernel.MustNewLocation("NYC"), 50)
//	if err != nil {
//	    return err
//	}
//	couriers, err := handler.Handle(ctx, query)
type GetAvailableCouriersQuery struct {
	location kernel.Location
	limit    int

	guard guard.ConstructorGuard
}

// NewGetAvailableCouriersQuery creates the query. A limit of 0 returns every
// eligible courier.
func NewGetAvailableCouriersQuery(location kernel.Location, limit int) (GetAvailableCouriersQuery, error) {
	if err := location.Validate(); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	if limit < 0 {
		return GetAvailableCouriersQuery{}, ErrCourierLimitIsInvalid
	}

	return GetAvailableCouriersQuery{
		location: location,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

func (q GetAvailableCouriersQuery) Location() kernel.Location {
	return q.location
}

func (q GetAvailableCouriersQuery) Limit() int {
	return q.limit
}

// AvailableCourier is the read model of one eligible courier.
type AvailableCourier struct {
	ID                   kernel.UUID
	Name                 string
	ServiceableLocations []kernel.Location
	DailyCapacity        int
	CurrentAssignedCount int
	AvailableCapacity    int
}
