// Package ports defines the contracts between the application core and its
// adapters: repositories for orders, couriers and assignments, the audit log,
// and the unit of work that scopes them to one transaction.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction. Lock waits inside it are
	// bounded by the factory's lock timeout.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// SavePoint marks a point inside the transaction that RollbackTo can
	// return to without abandoning the transaction.
	SavePoint(ctx context.Context, name string) error

	// RollbackTo undoes everything since the named savepoint, including row
	// locks taken after it.
	RollbackTo(ctx context.Context, name string) error

	// Repositories bound to the current transaction, or to the plain
	// connection when no transaction is active.
	CourierRepository() CourierRepository
	OrderRepository() OrderRepository
	AssignmentRepository() AssignmentRepository
	AuditLog() AuditLog
}
