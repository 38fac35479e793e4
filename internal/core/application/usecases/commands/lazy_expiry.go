package commands

import (
	"context"
	"errors"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
)

// expireIfElapsed implements the lazy half of expiry handling: when a command
// finds the aggregate past its TTL, the expired transition is persisted in the
// same transaction before the business error goes back to the caller, so the
// next status poll already sees "expired" without waiting for the reaper.
//
// Returns true when the expiry was persisted and committed.
func expireIfElapsed(ctx context.Context, uow GroupOrderUoW, g *grouporder.GroupOrder, now time.Time) bool {
	if err := g.Expire(now); err != nil {
		return false
	}
	if err := uow.GroupOrderRepository().Update(ctx, g); err != nil {
		// A concurrent writer (often the reaper itself) already moved the
		// aggregate on; the caller's expired answer stays correct either way.
		return false
	}
	return uow.Commit(ctx) == nil
}

// handleBusinessOutcome persists lazy expiry when the domain reported it and
// passes every business error through unchanged.
func handleBusinessOutcome(ctx context.Context, uow GroupOrderUoW, g *grouporder.GroupOrder, now time.Time, err error) error {
	if errors.Is(err, grouporder.ErrGroupOrderExpired) {
		expireIfElapsed(ctx, uow, g, now)
	}
	return err
}
