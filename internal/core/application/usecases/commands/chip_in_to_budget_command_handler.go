package commands

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
)

// ChipInToBudgetResult reports the actor's running contribution and the
// budget total after the chip-in.
type ChipInToBudgetResult struct {
	BudgetContribution int64
	TotalBudget        int64
	Status             grouporder.Status
}

// ChipInToBudgetCommandHandler handles budget contributions. Only joined
// participants contribute, and only while the group order is still open.
type ChipInToBudgetCommandHandler struct {
	uowFactory GroupOrderUoWFactory
}

// NewChipInToBudgetCommandHandler creates a handler for budget contributions.
func NewChipInToBudgetCommandHandler(uowFactory GroupOrderUoWFactory) ChipInToBudgetCommandHandler {
	return ChipInToBudgetCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the chip-in command.
// The contribution lands under the same optimistic version check as every
// other aggregate change. A group order found past its TTL is moved to
// expired in the same transaction and the contribution is rejected.
func (h *ChipInToBudgetCommandHandler) Handle(
	ctx context.Context,
	cmd ChipInToBudgetCommand,
) (ChipInToBudgetResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChipInToBudgetResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChipInToBudgetResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	groupOrder, err := uow.GroupOrderRepository().Get(ctx, cmd.GroupOrderID())
	if err != nil {
		return ChipInToBudgetResult{}, err
	}

	now := time.Now().UTC()
	if err = groupOrder.ChipInToBudget(cmd.ActorID(), cmd.Amount(), now); err != nil {
		return ChipInToBudgetResult{}, handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
		return ChipInToBudgetResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChipInToBudgetResult{}, err
	}

	participant, _ := groupOrder.Participant(cmd.ActorID())

	return ChipInToBudgetResult{
		BudgetContribution: participant.BudgetContribution(),
		TotalBudget:        groupOrder.TotalBudget(),
		Status:             groupOrder.Status(),
	}, nil
}
