// Package pgerr maps PostgreSQL error codes onto port-level sentinel errors.
package pgerr

import (
	"errors"
	"fmt"

	"dispatch/internal/core/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03"
)

// Translate wraps recognised driver errors with the matching port sentinel.
// Unrecognised errors are returned unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeLockNotAvailable:
		return fmt.Errorf("%w: %s", ports.ErrLockWaitTimeout, pgErr.Message)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", ports.ErrDuplicateAssignment, pgErr.ConstraintName)
	default:
		return err
	}
}
