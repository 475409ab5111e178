package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an assignment.
//
//	Failed ──(retry succeeds)──> Confirmed
//	Failed ──(retry fails)─────> Failed
//
// Confirmed is terminal.
type Status int

const (
	Unknown Status = iota
	Confirmed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Confirmed: "CONFIRMED",
		Failed:    "FAILED",
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

func (s Status) Validate() error {
	if s != Confirmed && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
