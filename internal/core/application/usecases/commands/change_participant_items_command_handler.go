package commands

import (
	"context"
	"time"

	"grouporder/internal/core/ports"
)

// ChangeParticipantItemsCommandHandler handles item list replacement.
// Item specs are priced against the catalogue before touching the aggregate,
// so client-supplied prices never enter the ledger.
type ChangeParticipantItemsCommandHandler struct {
	uowFactory GroupOrderUoWFactory
	catalogue  ports.CatalogueLookup
}

// NewChangeParticipantItemsCommandHandler creates a handler for item edits.
func NewChangeParticipantItemsCommandHandler(
	uowFactory GroupOrderUoWFactory,
	catalogue ports.CatalogueLookup,
) ChangeParticipantItemsCommandHandler {
	return ChangeParticipantItemsCommandHandler{
		uowFactory: uowFactory,
		catalogue:  catalogue,
	}
}

// Handle processes the item replacement command.
// Resolves dishes against the catalogue, replaces the participant's list, and
// persists with the optimistic version check. A successful edit withdraws the
// participant's readiness as a side effect inside the aggregate.
func (h *ChangeParticipantItemsCommandHandler) Handle(ctx context.Context, cmd ChangeParticipantItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := resolveItems(ctx, h.catalogue, cmd.Items())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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
	if err = groupOrder.ChangeItems(cmd.ActorID(), cmd.TargetUserID(), items, now); err != nil {
		return handleBusinessOutcome(ctx, uow, groupOrder, now, err)
	}

	if err = uow.GroupOrderRepository().Update(ctx, groupOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
