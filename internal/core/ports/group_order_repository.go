// Package ports defines the contracts between the coordination engine's core
// and its infrastructure: persistence, transactions, and external collaborators
// (catalogue, payments, notifications). These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
)

// GroupOrderRepository defines the persistence contract for group order
// aggregates, including their participant ledgers.
type GroupOrderRepository interface {
	// Add persists a new group order aggregate.
	// Fails if the id or share token already exists.
	Add(ctx context.Context, aggregate *grouporder.GroupOrder) error

	// Update persists changes to an existing aggregate using the aggregate's
	// version for optimistic concurrency control. A concurrent writer that
	// bumped the version first makes Update fail with a concurrency conflict;
	// the caller must retry the whole operation from a fresh Get.
	Update(ctx context.Context, aggregate *grouporder.GroupOrder) error

	// Get retrieves a group order with its complete participant ledger.
	Get(ctx context.Context, id kernel.UUID) (*grouporder.GroupOrder, error)

	// GetByShareToken resolves a share token to its group order.
	// The token maps to exactly one group order for that order's whole life.
	GetByShareToken(ctx context.Context, token grouporder.ShareToken) (*grouporder.GroupOrder, error)

	// GetAllElapsed retrieves group orders whose expires_at has passed and that
	// are still in a non-terminal status, up to limit. Used by the reaper sweep.
	GetAllElapsed(ctx context.Context, now time.Time, limit int) ([]*grouporder.GroupOrder, error)
}
