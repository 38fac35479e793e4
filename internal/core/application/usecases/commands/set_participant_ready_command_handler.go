package commands

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/services"
)

// SetParticipantReadyResult reports the aggregate view right after the
// readiness change, so the caller sees the all-ready flip (or the reopen) that
// its own call caused.
type SetParticipantReadyResult struct {
	Status    grouporder.Status
	Readiness services.Readiness
}

// SetParticipantReadyCommandHandler handles readiness declarations.
// The readiness recomputation happens inside the aggregate, synchronously with
// the flag change, under the same optimistic version check.
type SetParticipantReadyCommandHandler struct {
	uowFactory GroupOrderUoWFactory
	aggregator *services.ReadinessAggregator
}

// NewSetParticipantReadyCommandHandler creates a handler for readiness changes.
func NewSetParticipantReadyCommandHandler(
	uowFactory GroupOrderUoWFactory,
	aggregator *services.ReadinessAggregator,
) SetParticipantReadyCommandHandler {
	return SetParticipantReadyCommandHandler{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

// Handle processes the readiness command.
// Declaring ready over an empty item list is rejected without mutating
// anything. Withdrawing readiness while the group order is all ready reopens
// editing for every participant.
func (h *SetParticipantReadyCommandHandler) Handle(
	ctx context.Context,
	cmd SetParticipantReadyCommand,
) (SetParticipantReadyResult, error) {
	if err := cmd.Validate(); err != nil {
		return SetParticipantReadyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SetParticipantReadyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupOrder, err := uow.GroupOrderRepository().Get(ctx, cmd.GroupOrderID())
	if err != nil {
		return SetParticipantReadyResult{}, err
	}

	now := time.Now().UTC()
	if err = groupOrder.SetReady(cmd.ActorID(), cmd.TargetUserID(), cmd.Ready(), now); err != nil {
		return SetParticipantReadyResult{}, handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
		return SetParticipantReadyResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SetParticipantReadyResult{}, err
	}

	return SetParticipantReadyResult{
		Status:    groupOrder.Status(),
		Readiness: h.aggregator.Recompute(groupOrder),
	}, nil
}
