package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrRetryFailedCommandIsNotConstructed = errors.New(
		"RetryFailedCommand must be created via NewRetryFailedCommand constructor",
	)
	ErrRetryCeilingIsInvalid = errs.NewValueIsInvalidError("max_retries")
)

// RetryFailedCommand asks for one sweep over failed assignments whose retry
// count is below the ceiling.
type RetryFailedCommand struct { //nolint:recvcheck //using for validation
	ceiling int

	guard guard.ConstructorGuard
}

// NewRetryFailedCommand creates a retry sweep. A ceiling of 0 selects
// assignment.DefaultRetryCeiling; negative ceilings are rejected.
func NewRetryFailedCommand(ceiling int) (RetryFailedCommand, error) {
	if ceiling < 0 {
		return RetryFailedCommand{}, ErrRetryCeilingIsInvalid
	}
	if ceiling == 0 {
		ceiling = assignment.DefaultRetryCeiling
	}

	return RetryFailedCommand{
		ceiling: ceiling,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryFailedCommand) Validate() error {
	return c.guard.Validate(ErrRetryFailedCommandIsNotConstructed)
}

func (c RetryFailedCommand) Ceiling() int {
	return c.ceiling
}
