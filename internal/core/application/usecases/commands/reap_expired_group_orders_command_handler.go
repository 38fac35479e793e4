package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
	"grouporder/internal/pkg/errs"
)

// reapBatchSize caps how many elapsed group orders one sweep picks up.
// Leftovers are caught by the next tick.
const reapBatchSize = 100

// ReapExpiredGroupOrdersCommandHandler sweeps group orders whose TTL elapsed
// and moves them to the expired status. The sweep is the safety net behind the
// lazy expiry check: most expirations are persisted on first access, the
// reaper catches the ones nobody touched.
type ReapExpiredGroupOrdersCommandHandler struct {
	uowFactory GroupOrderUoWFactory
	notifier   ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewReapExpiredGroupOrdersCommandHandler creates a handler for expiry sweeps.
func NewReapExpiredGroupOrdersCommandHandler(
	uowFactory GroupOrderUoWFactory,
	notifier ports.NotificationDispatcher,
	logger *slog.Logger,
) ReapExpiredGroupOrdersCommandHandler {
	return ReapExpiredGroupOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the sweep command.
// Each elapsed group order is expired under the optimistic version check; an
// aggregate that lost the check to a concurrent writer is skipped, not
// retried, since the writer already handled it one way or another. Expired
// aggregates keep their participant ledger for audit.
func (h *ReapExpiredGroupOrdersCommandHandler) Handle(ctx context.Context, cmd ReapExpiredGroupOrdersCommand) error {
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

	now := time.Now().UTC()
	repo := uow.GroupOrderRepository()

	elapsed, err := repo.GetAllElapsed(ctx, now, reapBatchSize)
	if err != nil {
		return err
	}
	if len(elapsed) == 0 {
		return uow.Commit(ctx)
	}

	reaped := make([]*grouporder.GroupOrder, 0, len(elapsed))
	for _, groupOrder := range elapsed {
		if expireErr := groupOrder.Expire(now); expireErr != nil {
			// Already terminal: a lazy expiry or a finalize won the race.
			continue
		}

		if updateErr := repo.Update(ctx, groupOrder); updateErr != nil {
			if errors.Is(updateErr, errs.ErrConcurrencyConflict) {
				h.logger.Debug("expiry sweep lost version check, skipping",
					"group_order_id", groupOrder.ID().String())
				continue
			}
			return updateErr
		}
		reaped = append(reaped, groupOrder)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, groupOrder := range reaped {
		userIDs := make([]kernel.UUID, 0, len(groupOrder.Participants()))
		for _, p := range groupOrder.Participants() {
			userIDs = append(userIDs, p.UserID())
		}
		h.notifier.Dispatch(ctx, ports.EventGroupOrderExpired, groupOrder.ID(), userIDs)
	}

	if len(reaped) > 0 {
		h.logger.Info("expiry sweep finished", "reaped", len(reaped))
	}
	return nil
}
