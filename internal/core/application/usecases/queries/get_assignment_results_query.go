package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetAssignmentResultsQueryIsNotConstructed = errors.New(
		"GetAssignmentResultsQuery must be created via NewGetAssignmentResultsQuery constructor",
	)
	ErrAssignmentIDsAreEmpty = errs.NewValueIsRequiredError("assignment_ids")
)

// GetAssignmentResultsQuery lists ledger rows, newest first. With explicit
// assignment IDs every matching row is returned and the page is ignored.
//
// Example:
//
//	page, _ := NewPage(1, 100)
//	query, _ := NewGetAssignmentResultsQuery(nil, page)
//	results, err := handler.Handle(ctx, query)
type GetAssignmentResultsQuery struct {
	ids  []kernel.UUID
	page Page

	guard guard.ConstructorGuard
}

// NewGetAssignmentResultsQuery creates the query. A nil ids slice lists every
// assignment page by page; a non-nil empty slice is rejected.
func NewGetAssignmentResultsQuery(ids []kernel.UUID, page Page) (GetAssignmentResultsQuery, error) {
	if ids != nil {
		if len(ids) == 0 {
			return GetAssignmentResultsQuery{}, ErrAssignmentIDsAreEmpty
		}
		for _, id := range ids {
			if err := id.Validate(); err != nil {
				return GetAssignmentResultsQuery{}, errs.NewValueIsInvalidErrorWithCause("assignment_ids", err)
			}
		}
		ids = append([]kernel.UUID(nil), ids...)
	}

	return GetAssignmentResultsQuery{
		ids:   ids,
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentResultsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentResultsQueryIsNotConstructed)
}

// IDs returns the explicit selection, or nil.
func (q GetAssignmentResultsQuery) IDs() []kernel.UUID {
	if q.ids == nil {
		return nil
	}
	return append([]kernel.UUID(nil), q.ids...)
}

func (q GetAssignmentResultsQuery) Page() Page {
	return q.page
}

// AssignmentResult is one ledger row joined with its order and courier.
type AssignmentResult struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CourierID    kernel.UUID
	CourierName  string
	Status       string
	RetryCount   int
	ErrorMessage *string
	OrderDate    time.Time
	Location     kernel.Location
	OrderValue   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
