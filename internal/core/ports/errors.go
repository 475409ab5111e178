package ports

import "errors"

var (
	// ErrDuplicateAssignment is returned by AssignmentRepository.Add when the
	// one-confirmed-assignment-per-order constraint rejected the insert.
	ErrDuplicateAssignment = errors.New("duplicate assignment")

	// ErrLockWaitTimeout is returned by CourierRepository.ReserveCapacity when
	// the courier row lock could not be acquired within the configured wait.
	ErrLockWaitTimeout = errors.New("courier lock wait timeout")
)
