// Package queries contains read-only operations over orders, couriers and the
// assignment ledger. Handlers run plain SQL through GORM and return flat read
// models; they never load aggregates or open transactions.
package queries

import (
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultPageLimit is the page size used when the caller sends none.
	DefaultPageLimit = 100

	// MaxPageLimit caps a single page.
	MaxPageLimit = 1000
)

var ErrPageIsInvalid = errs.NewValueIsInvalidError("page")

// Page is a 1-based page request.
type Page struct {
	number int
	limit  int
}

// NewPage validates a page request. page must be >= 1 and limit in
// [1, MaxPageLimit].
func NewPage(page, limit int) (Page, error) {
	if page < 1 {
		return Page{}, ErrPageIsInvalid
	}
	if limit < 1 || limit > MaxPageLimit {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageLimit)
	}

	return Page{number: page, limit: limit}, nil
}

func (p Page) Number() int {
	return p.number
}

func (p Page) Limit() int {
	return p.limit
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.number - 1) * p.limit
}

// TotalPages returns how many pages of this size total rows fill.
func (p Page) TotalPages(total int64) int64 {
	if p.limit == 0 {
		return 0
	}
	return (total + int64(p.limit) - 1) / int64(p.limit)
}
