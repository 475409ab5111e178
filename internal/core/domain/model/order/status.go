package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Unassigned ──> Assigned
//
// Assigned is terminal as far as the assignment engine is concerned; the
// engine never moves an order back.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Unassigned orders wait for a courier.
	Unassigned

	// Assigned orders have exactly one confirmed assignment.
	Assigned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Unassigned: "UNASSIGNED",
		Assigned:   "ASSIGNED",
	}
}

// ParseStatus maps the persisted representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Unassigned && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted representation, "UNASSIGNED" or "ASSIGNED".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Assign transitions Unassigned to Assigned.
func (s Status) Assign() (Status, error) {
	if s != Unassigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}

	return Assigned, nil
}
