package commands

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
)

// JoinGroupOrderResult reports the outcome of a join: whether this call
// created the membership or found an existing one, and the status after it.
type JoinGroupOrderResult struct {
	AlreadyJoined bool
	JoinedAt      time.Time
	Status        grouporder.Status
}

// JoinGroupOrderCommandHandler handles the business logic for joining a
// group order. Rejoining is a no-op that reports the existing membership.
type JoinGroupOrderCommandHandler struct {
	uowFactory GroupOrderUoWFactory
}

// NewJoinGroupOrderCommandHandler creates a handler for join operations.
func NewJoinGroupOrderCommandHandler(uowFactory GroupOrderUoWFactory) JoinGroupOrderCommandHandler {
	return JoinGroupOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the join command.
// Loads the aggregate, applies the join, and persists it with the optimistic
// version check. A group order found past its TTL is moved to expired in the
// same transaction and the join is rejected.
func (h *JoinGroupOrderCommandHandler) Handle(
	ctx context.Context,
	cmd JoinGroupOrderCommand,
) (JoinGroupOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return JoinGroupOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return JoinGroupOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupOrder, err := uow.GroupOrderRepository().Get(ctx, cmd.GroupOrderID())
	if err != nil {
		return JoinGroupOrderResult{}, err
	}

	now := time.Now().UTC()

	participant, created, err := groupOrder.Join(cmd.UserID(), now)
	if err != nil {
		return JoinGroupOrderResult{}, handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	// A rejoin mutates nothing, so there is nothing to persist.
	alreadyJoined := !created
	if created {
		if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
			return JoinGroupOrderResult{}, err
		}
		if err = uow.Commit(ctx); err != nil {
			return JoinGroupOrderResult{}, err
		}
	}

	return JoinGroupOrderResult{
		AlreadyJoined: alreadyJoined,
		JoinedAt:      participant.JoinedAt(),
		Status:        groupOrder.Status(),
	}, nil
}
