package commands

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
)

// CreateGroupOrderResult carries what a creator needs right after starting a
// group order: the id to operate on and the share token to hand out.
type CreateGroupOrderResult struct {
	GroupOrderID kernel.UUID
	ShareToken   string
	ExpiresAt    time.Time
}

// CreateGroupOrderCommandHandler handles the business logic for starting a
// group order. Mints the share token and sets the expiry window. The creator
// owns the group order but is not enrolled in the participant ledger; like
// anyone else they join explicitly if they want to contribute items.
//
// Example:
//
//	handler := NewCreateGroupOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateGroupOrderCommand(kernel.NewUUID(), creatorID, "Friday lunch", time.Hour, 0)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("group order creation failed: %w", err)
//	}
//	// result.ShareToken can now be distributed to invitees
type CreateGroupOrderCommandHandler struct {
	uowFactory GroupOrderUoWFactory
}

// NewCreateGroupOrderCommandHandler creates a handler for group order creation.
// Requires a GroupOrderUoWFactory for transactional persistence.
func NewCreateGroupOrderCommandHandler(uowFactory GroupOrderUoWFactory) CreateGroupOrderCommandHandler {
	return CreateGroupOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the group order creation command.
// Uses transaction to ensure the aggregate is properly persisted or rolled
// back on error.
func (h *CreateGroupOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateGroupOrderCommand,
) (CreateGroupOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateGroupOrderResult{}, err
	}

	now := time.Now().UTC()
	groupOrder, err := grouporder.NewGroupOrder(
		cmd.GroupOrderID(), cmd.CreatorID(), cmd.Title(), cmd.InitialBudget(), now, cmd.TTL())
	if err != nil {
		return CreateGroupOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateGroupOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.GroupOrderRepository().Add(ctx, groupOrder); err != nil {
		return CreateGroupOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateGroupOrderResult{}, err
	}

	return CreateGroupOrderResult{
		GroupOrderID: groupOrder.ID(),
		ShareToken:   groupOrder.ShareToken().String(),
		ExpiresAt:    groupOrder.ExpiresAt(),
	}, nil
}
