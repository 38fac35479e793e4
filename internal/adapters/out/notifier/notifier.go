// Package notifier delivers group order lifecycle events to participants.
package notifier

import (
	"context"
	"log/slog"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
)

// SlogNotificationDispatcher implements NotificationDispatcher by writing
// structured log records. It stands in for a push or messaging integration:
// the engine's contract is fire-and-forget, so swapping the transport later
// does not touch any caller.
type SlogNotificationDispatcher struct {
	logger *slog.Logger
}

// NewSlogNotificationDispatcher creates a log-backed notification dispatcher.
func NewSlogNotificationDispatcher(logger *slog.Logger) *SlogNotificationDispatcher {
	return &SlogNotificationDispatcher{
		logger: logger.With("component", "notifier"),
	}
}

// Dispatch records the event for every affected participant.
// Never returns an error; notification failures must not affect the
// transition that triggered them.
func (d *SlogNotificationDispatcher) Dispatch(
	ctx context.Context,
	event ports.GroupOrderEvent,
	groupOrderID kernel.UUID,
	userIDs []kernel.UUID,
) {
	recipients := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		recipients = append(recipients, id.String())
	}

	d.logger.InfoContext(ctx, "group order event dispatched",
		"event", string(event),
		"group_order_id", groupOrderID.String(),
		"recipients", recipients)
}
