// Package commands contains business operations that modify group order state.
// Implements the command side of the CQRS split: each operation is a
// constructor-guarded command object processed by a dedicated handler that
// manages validation, transaction lifecycle, and persistence.
package commands

import (
	"context"

	"grouporder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// GroupOrderRepoFactory provides access to the group order repository
	// within a transaction.
	GroupOrderRepoFactory interface {
		GroupOrderRepository() ports.GroupOrderRepository
	}

	// GroupOrderUoW manages transactions over the group order aggregate.
	GroupOrderUoW interface {
		TxManager
		GroupOrderRepoFactory
	}

	// GroupOrderUoWFactory creates new unit of work instances.
	// Each handler invocation gets its own instance.
	GroupOrderUoWFactory interface {
		Create() GroupOrderUoW
	}
)
