package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultRetryCeiling is the number of recovery attempts a failed assignment
// gets before it is left Failed for good.
const DefaultRetryCeiling = 3

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewConfirmed or NewFailed constructor")
	ErrAssignmentIsNotFailed      = errors.New("only failed assignments can be retried")
	ErrErrorMessageIsRequired     = errs.NewValueIsRequiredError("errorMessage")
)

// Assignment is the durable record linking one order to one courier.
//
// Invariants:
//   - orderID and courierID are valid identifiers
//   - retryCount >= 0 and only grows
//   - Confirmed assignments carry no error message
//   - Failed assignments carry the reason of their last failure
//
// At most one Confirmed assignment may exist per order; that rule spans
// aggregates and is enforced by the ledger's unique index.
type Assignment struct {
	id           kernel.UUID
	orderID      kernel.UUID
	courierID    kernel.UUID
	status       Status
	retryCount   int
	errorMessage *string
	createdAt    time.Time
	updatedAt    time.Time
	guard        guard.ConstructorGuard
}

// NewConfirmed creates the assignment of a freshly matched order.
func NewConfirmed(orderID, courierID kernel.UUID, now time.Time) (*Assignment, error) {
	a := &Assignment{
		id:     kernel.NewUUID(),
		status: Confirmed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		a.setTimestamps(now, now),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// NewFailed records a match attempt that could not be confirmed. courierID is
// the courier the retry engine will try again.
func NewFailed(orderID, courierID kernel.UUID, reason string, now time.Time) (*Assignment, error) {
	a := &Assignment{
		id:     kernel.NewUUID(),
		status: Failed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		a.setTimestamps(now, now),
		a.setErrorMessage(reason),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment rebuilds an assignment loaded from the ledger.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	status Status,
	retryCount int,
	errorMessage *string,
	createdAt, updatedAt time.Time,
) (*Assignment, error) {
	a := &Assignment{
		guard: guard.NewConstructorGuard(),
	}

	var msgErr error
	if errorMessage != nil {
		msgErr = a.setErrorMessage(*errorMessage)
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		status.Validate(),
		a.setRetryCount(retryCount),
		a.setTimestamps(createdAt, updatedAt),
		msgErr,
	); err != nil {
		return nil, err
	}

	a.status = status
	return a, nil
}

// Validate ensures the assignment was built by a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) RetryCount() int {
	return a.retryCount
}

// ErrorMessage returns the last failure reason, or nil.
func (a *Assignment) ErrorMessage() *string {
	if a.errorMessage == nil {
		return nil
	}
	msg := *a.errorMessage
	return &msg
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Assignment) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Assignment) IsConfirmed() bool {
	return a.status == Confirmed
}

// CanRetry reports whether the assignment is Failed and below ceiling.
func (a *Assignment) CanRetry(ceiling int) bool {
	return a.status == Failed && a.retryCount < ceiling
}

// Promote confirms a failed assignment after a successful retry: the retry
// counter grows and the stored error is cleared.
func (a *Assignment) Promote(now time.Time) error {
	if a.status != Failed {
		return ErrAssignmentIsNotFailed
	}

	a.status = Confirmed
	a.retryCount++
	a.errorMessage = nil
	a.updatedAt = now.UTC()
	return nil
}

// RecordFailure keeps the assignment Failed, counting one more attempt.
func (a *Assignment) RecordFailure(reason string, now time.Time) error {
	if a.status != Failed {
		return ErrAssignmentIsNotFailed
	}
	if err := a.setErrorMessage(reason); err != nil {
		return err
	}

	a.retryCount++
	a.updatedAt = now.UTC()
	return nil
}

// Refresh replaces the failure reason of a Failed assignment without
// counting a retry. Used when a new batch fails the same order again.
func (a *Assignment) Refresh(courierID kernel.UUID, reason string, now time.Time) error {
	if a.status != Failed {
		return ErrAssignmentIsNotFailed
	}
	if err := errors.Join(a.setCourierID(courierID), a.setErrorMessage(reason)); err != nil {
		return err
	}

	a.updatedAt = now.UTC()
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	a.orderID = id
	return nil
}

func (a *Assignment) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("courier id: %w", err)
	}
	a.courierID = id
	return nil
}

func (a *Assignment) setRetryCount(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("retryCount", fmt.Errorf("%d is negative", n))
	}
	a.retryCount = n
	return nil
}

func (a *Assignment) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	a.createdAt = createdAt.UTC()
	a.updatedAt = updatedAt.UTC()
	return nil
}

func (a *Assignment) setErrorMessage(msg string) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ErrErrorMessageIsRequired
	}
	a.errorMessage = &msg
	return nil
}
