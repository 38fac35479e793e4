package queries

import (
	"errors"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrResolveShareTokenQueryIsNotConstructed = errors.New(
	"ResolveShareTokenQuery must be created via NewResolveShareTokenQuery constructor",
)

// ResolveShareTokenQuery resolves an invite token to its group order. This is
// what an invitee's client calls first, before joining.
//
// Example:
//
//	query, _ := NewResolveShareTokenQuery(token)
//	handler := NewResolveShareTokenQueryHandler(db)
//
//	resolved, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("token resolution failed: %w", err)
//	}
//	fmt.Printf("token points at group order %s\n", resolved.GroupOrderID)
type ResolveShareTokenQuery struct {
	token grouporder.ShareToken

	guard guard.ConstructorGuard
}

// NewResolveShareTokenQuery creates a query from the raw token string.
// Malformed tokens are rejected here, before any database work.
func NewResolveShareTokenQuery(rawToken string) (ResolveShareTokenQuery, error) {
	token, err := grouporder.ShareTokenFromString(rawToken)
	if err != nil {
		return ResolveShareTokenQuery{}, err
	}
	return ResolveShareTokenQuery{
		token: token,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveShareTokenQuery) Validate() error {
	return q.guard.Validate(ErrResolveShareTokenQueryIsNotConstructed)
}

// Token returns the parsed share token.
func (q ResolveShareTokenQuery) Token() grouporder.ShareToken {
	return q.token
}

// ResolveShareTokenQueryResponse identifies the group order behind a token.
// Status is the effective lifecycle state; clients must treat anything other
// than forming or collecting as not joinable.
type ResolveShareTokenQueryResponse struct {
	GroupOrderID kernel.UUID
	CreatorID    kernel.UUID
	Title        string
	Status       string
	ExpiresAt    time.Time
}
