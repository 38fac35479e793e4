package commands

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
)

// CancelGroupOrderCommandHandler handles creator-initiated cancellation.
// The participant ledger stays in storage for audit; only the status moves.
type CancelGroupOrderCommandHandler struct {
	uowFactory GroupOrderUoWFactory
	notifier   ports.NotificationDispatcher
}

// NewCancelGroupOrderCommandHandler creates a handler for cancellation.
func NewCancelGroupOrderCommandHandler(
	uowFactory GroupOrderUoWFactory,
	notifier ports.NotificationDispatcher,
) CancelGroupOrderCommandHandler {
	return CancelGroupOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancel command.
// Persists the transition under the optimistic version check and notifies
// participants after commit.
func (h *CancelGroupOrderCommandHandler) Handle(ctx context.Context, cmd CancelGroupOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupOrder, err := uow.GroupOrderRepository().Get(ctx, cmd.GroupOrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = groupOrder.Cancel(cmd.ActorID(), now); err != nil {
		return handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	userIDs := make([]kernel.UUID, 0, len(groupOrder.Participants()))
	for _, p := range groupOrder.Participants() {
		userIDs = append(userIDs, p.UserID())
	}
	h.notifier.Dispatch(ctx, ports.EventGroupOrderCancelled, groupOrder.ID(), userIDs)

	return nil
}
