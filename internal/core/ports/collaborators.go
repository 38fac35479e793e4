package ports

import (
	"context"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/domain/services"
)

// Dish is the catalogue's view of one orderable dish.
// Unit price is in minor currency units.
type Dish struct {
	ID        kernel.UUID
	Name      string
	UnitPrice int64
}

// CatalogueLookup resolves dish ids against the catalogue collaborator.
// The catalogue is authoritative for names and prices; client-supplied values
// are never trusted for pricing.
type CatalogueLookup interface {
	Dish(ctx context.Context, dishID kernel.UUID) (Dish, error)
}

// PaymentInitiator hands a consolidated order to the payment collaborator.
// Called after the finalize transition committed; a failure here is logged and
// retried out-of-band by the payment side, never rolled back into the engine.
type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, order services.ConsolidatedOrder) error
}

// GroupOrderEvent names the engine outcomes worth telling participants about.
type GroupOrderEvent string

const (
	// EventGroupOrderFinalized fires when contributions were consolidated.
	EventGroupOrderFinalized GroupOrderEvent = "group_order_finalized"
	// EventGroupOrderCancelled fires when the creator cancelled.
	EventGroupOrderCancelled GroupOrderEvent = "group_order_cancelled"
	// EventGroupOrderExpired fires when the TTL elapsed before finalize.
	EventGroupOrderExpired GroupOrderEvent = "group_order_expired"
)

// NotificationDispatcher delivers engine outcomes to participants.
// Dispatch is fire-and-forget from the engine's perspective: failures must not
// affect the transition that triggered the notification.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, event GroupOrderEvent, groupOrderID kernel.UUID, userIDs []kernel.UUID)
}
