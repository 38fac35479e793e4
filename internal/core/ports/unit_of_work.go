package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request/command,
// ensuring isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one business transaction boundary.
// Client code manages the transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// GroupOrderRepository returns a repository bound to the current transaction.
	GroupOrderRepository() GroupOrderRepository
}
