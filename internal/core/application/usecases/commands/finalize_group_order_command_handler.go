package commands

import (
	"context"
	"log/slog"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/domain/services"
	"grouporder/internal/core/ports"
)

// FinalizeGroupOrderResult carries the identifier of the consolidated order
// produced by finalization.
type FinalizeGroupOrderResult struct {
	FinalizedOrderID kernel.UUID
}

// FinalizeGroupOrderCommandHandler handles the irreversible close of a group
// order: it consolidates every contribution into one order, records the
// consolidated order id on the aggregate, and hands the result to the payment
// collaborator after the transaction committed.
type FinalizeGroupOrderCommandHandler struct {
	uowFactory   GroupOrderUoWFactory
	consolidator *services.OrderConsolidator
	payments     ports.PaymentInitiator
	notifier     ports.NotificationDispatcher
	logger       *slog.Logger
}

// NewFinalizeGroupOrderCommandHandler creates a handler for finalization.
func NewFinalizeGroupOrderCommandHandler(
	uowFactory GroupOrderUoWFactory,
	consolidator *services.OrderConsolidator,
	payments ports.PaymentInitiator,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) FinalizeGroupOrderCommandHandler {
	return FinalizeGroupOrderCommandHandler{
		uowFactory:   uowFactory,
		consolidator: consolidator,
		payments:     payments,
		notifier:     notifier,
		logger:       logger,
	}
}

// Handle processes the finalize command.
// The state transition and the consolidated order id are persisted atomically
// under the optimistic version check; payment initiation and participant
// notification happen after commit and never roll the transition back.
func (h *FinalizeGroupOrderCommandHandler) Handle(
	ctx context.Context,
	cmd FinalizeGroupOrderCommand,
) (FinalizeGroupOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupOrder, err := uow.GroupOrderRepository().Get(ctx, cmd.GroupOrderID())
	if err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	now := time.Now().UTC()
	finalizedOrderID := kernel.NewUUID()

	if err = groupOrder.Finalize(cmd.ActorID(), finalizedOrderID, cmd.Force(), now); err != nil {
		return FinalizeGroupOrderResult{}, handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	consolidated, err := h.consolidator.Consolidate(groupOrder, finalizedOrderID)
	if err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return FinalizeGroupOrderResult{}, err
	}

	if err = h.payments.InitiatePayment(ctx, consolidated); err != nil {
		h.logger.Error("payment initiation failed",
			"group_order_id", groupOrder.ID().String(),
			"finalized_order_id", finalizedOrderID.String(),
			"error", err)
	}

	userIDs := make([]kernel.UUID, 0, len(groupOrder.Participants()))
	for _, p := range groupOrder.Participants() {
		userIDs = append(userIDs, p.UserID())
	}
	h.notifier.Dispatch(ctx, ports.EventGroupOrderFinalized, groupOrder.ID(), userIDs)

	return FinalizeGroupOrderResult{FinalizedOrderID: finalizedOrderID}, nil
}
