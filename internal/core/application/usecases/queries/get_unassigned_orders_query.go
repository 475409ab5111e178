package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
		"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
	)
)

// GetUnassignedOrdersQuery lists orders still waiting for a courier, oldest
// first, optionally for a single location.
//
// Example:
//
//	page, _ := NewPage(1, 100)
//	nyc := kernel.MustNewLocation("NYC")
//	query, err := NewGetUnassignedOrdersQuery(page, &nyc)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	fmt.Printf("%d of %d unassigned orders\n", len(resp.Orders), resp.Total)
type GetUnassignedOrdersQuery struct {
	page     Page
	location *kernel.Location

	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates the query. A nil location lists every
// location.
func NewGetUnassignedOrdersQuery(page Page, location *kernel.Location) (GetUnassignedOrdersQuery, error) {
	if location != nil {
		if err := location.Validate(); err != nil {
			return GetUnassignedOrdersQuery{}, err
		}
		loc := *location
		location = &loc
	}

	return GetUnassignedOrdersQuery{
		page:     page,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

func (q GetUnassignedOrdersQuery) Page() Page {
	return q.page
}

// Location returns the location filter, or nil.
func (q GetUnassignedOrdersQuery) Location() *kernel.Location {
	return q.location
}

// UnassignedOrder is the read model of one waiting order.
type UnassignedOrder struct {
	ID        kernel.UUID
	Location  kernel.Location
	Value     int64
	CreatedAt time.Time
}

// GetUnassignedOrdersQueryResponse is one page plus the total matching count.
type GetUnassignedOrdersQueryResponse struct {
	Orders     []UnassignedOrder
	Page       int
	Limit      int
	Total      int64
	TotalPages int64
}
