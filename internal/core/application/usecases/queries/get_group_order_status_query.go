// Package queries contains read-only operations over group order state.
// Implements the query side of the CQRS split: handlers read the database
// directly with raw SQL, bypassing the aggregate and its transaction
// machinery.
package queries

import (
	"errors"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrGetGroupOrderStatusQueryIsNotConstructed = errors.New(
	"GetGroupOrderStatusQuery must be created via NewGetGroupOrderStatusQuery constructor",
)

// GetGroupOrderStatusQuery retrieves the live status view of one group order:
// lifecycle state, readiness counts, and the per-participant breakdown that
// clients poll while the group builds its order.
//
// Example:
//
//	query, _ := NewGetGroupOrderStatusQuery(groupOrderID)
//	handler := NewGetGroupOrderStatusQueryHandler(db)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("status poll failed: %w", err)
//	}
//	fmt.Printf("%d/%d ready\n", status.ReadyCount, status.TotalCount)
type GetGroupOrderStatusQuery struct {
	groupOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetGroupOrderStatusQuery creates a query for one group order's status.
func NewGetGroupOrderStatusQuery(groupOrderID kernel.UUID) (GetGroupOrderStatusQuery, error) {
	if err := groupOrderID.Validate(); err != nil {
		return GetGroupOrderStatusQuery{}, err
	}
	return GetGroupOrderStatusQuery{
		groupOrderID: groupOrderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetGroupOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetGroupOrderStatusQueryIsNotConstructed)
}

// GroupOrderID returns the group order being polled.
func (q GetGroupOrderStatusQuery) GroupOrderID() kernel.UUID {
	return q.groupOrderID
}

// ParticipantStatusResponse is one participant's row in the status view.
// Subtotal is in minor currency units.
type ParticipantStatusResponse struct {
	UserID             kernel.UUID
	IsReady            bool
	ItemCount          int
	Subtotal           int64
	BudgetContribution int64
	JoinedAt           time.Time
}

// GetGroupOrderStatusQueryResponse is the full status view of a group order.
// Status carries the effective lifecycle state: a group order whose TTL
// elapsed reads as expired even before the transition was persisted.
type GetGroupOrderStatusQueryResponse struct {
	ID               kernel.UUID
	CreatorID        kernel.UUID
	Title            string
	Status           string
	ExpiresAt        time.Time
	FinalizedOrderID *kernel.UUID
	ReadyCount       int
	TotalCount       int
	AllReady         bool
	InitialBudget    int64
	TotalBudget      int64
	Participants     []ParticipantStatusResponse
}
