package http

import (
	"time"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/application/usecases/queries"
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
)

// expiredStatusWire is the wire form of the expired lifecycle state.
var expiredStatusWire = grouporder.Expired.String()

// CreateGroupOrderRequest is the body of POST /group-orders.
// TTLSeconds of zero falls back to the server's configured default. The
// initial budget seeds the shared budget bucket, in minor currency units.
type CreateGroupOrderRequest struct {
	Title         string `json:"title"`
	TTLSeconds    int64  `json:"ttl_seconds"`
	InitialBudget int64  `json:"initial_budget"`
}

// CreateGroupOrderResponse returns what the creator distributes to invitees.
type CreateGroupOrderResponse struct {
	ID         string    `json:"id"`
	ShareToken string    `json:"share_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ResolveShareTokenResponse identifies the group order behind an invite token.
type ResolveShareTokenResponse struct {
	GroupOrderID string    `json:"group_order_id"`
	CreatorID    string    `json:"creator_id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ItemRequest is one requested line: the dish, how many, and an optional
// preparation note. Names and prices always come from the catalogue.
type ItemRequest struct {
	DishID              string `json:"dish_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

// JoinGroupOrderRequest optionally sets the joiner's initial item list.
type JoinGroupOrderRequest struct {
	Items []ItemRequest `json:"items"`
}

// JoinGroupOrderResponse reports the membership and the status after it.
type JoinGroupOrderResponse struct {
	AlreadyJoined bool      `json:"already_joined"`
	JoinedAt      time.Time `json:"joined_at"`
	Status        string    `json:"status"`
}

// ChangeItemsRequest replaces a participant's item list wholesale.
type ChangeItemsRequest struct {
	Items []ItemRequest `json:"items"`
}

// SetReadyRequest declares (or withdraws) the caller's readiness.
type SetReadyRequest struct {
	Ready bool `json:"ready"`
}

// SetReadyResponse shows the readiness picture right after the change.
type SetReadyResponse struct {
	Status     string `json:"status"`
	ReadyCount int    `json:"ready_count"`
	TotalCount int    `json:"total_count"`
	AllReady   bool   `json:"all_ready"`
}

// ChipInToBudgetRequest adds to the caller's budget contribution.
type ChipInToBudgetRequest struct {
	Amount int64 `json:"amount"`
}

// ChipInToBudgetResponse shows the caller's running contribution and the
// budget total after the chip-in.
type ChipInToBudgetResponse struct {
	BudgetContribution int64 `json:"budget_contribution"`
	TotalBudget        int64 `json:"total_budget"`
}

// ParticipantStatus is one participant's row in the status view.
type ParticipantStatus struct {
	UserID             string    `json:"user_id"`
	IsReady            bool      `json:"is_ready"`
	ItemCount          int       `json:"item_count"`
	Subtotal           int64     `json:"subtotal"`
	BudgetContribution int64     `json:"budget_contribution"`
	JoinedAt           time.Time `json:"joined_at"`
}

// GroupOrderStatusResponse is the full status view clients poll.
type GroupOrderStatusResponse struct {
	ID               string              `json:"id"`
	CreatorID        string              `json:"creator_id"`
	Title            string              `json:"title"`
	Status           string              `json:"status"`
	ExpiresAt        time.Time           `json:"expires_at"`
	FinalizedOrderID *string             `json:"finalized_order_id,omitempty"`
	ReadyCount       int                 `json:"ready_count"`
	TotalCount       int                 `json:"total_count"`
	AllReady         bool                `json:"all_ready"`
	InitialBudget    int64               `json:"initial_budget"`
	TotalBudget      int64               `json:"total_budget"`
	Participants     []ParticipantStatus `json:"participants"`
}

// FinalizeGroupOrderRequest optionally forces finalization before all ready.
type FinalizeGroupOrderRequest struct {
	Force bool `json:"force"`
}

// FinalizeGroupOrderResponse carries the consolidated order id.
type FinalizeGroupOrderResponse struct {
	FinalizedOrderID string `json:"finalized_order_id"`
}

// toItemSpecs converts request lines into application item specs.
func toItemSpecs(items []ItemRequest) ([]commands.ItemSpec, error) {
	specs := make([]commands.ItemSpec, 0, len(items))
	for _, item := range items {
		dishID, err := kernel.UUIDFromString(item.DishID)
		if err != nil {
			return nil, err
		}
		specs = append(specs, commands.ItemSpec{
			DishID:              dishID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return specs, nil
}

func toStatusResponse(status queries.GetGroupOrderStatusQueryResponse) GroupOrderStatusResponse {
	participants := make([]ParticipantStatus, len(status.Participants))
	for i, p := range status.Participants {
		participants[i] = ParticipantStatus{
			UserID:             p.UserID.String(),
			IsReady:            p.IsReady,
			ItemCount:          p.ItemCount,
			Subtotal:           p.Subtotal,
			BudgetContribution: p.BudgetContribution,
			JoinedAt:           p.JoinedAt,
		}
	}

	response := GroupOrderStatusResponse{
		ID:            status.ID.String(),
		CreatorID:     status.CreatorID.String(),
		Title:         status.Title,
		Status:        status.Status,
		ExpiresAt:     status.ExpiresAt,
		ReadyCount:    status.ReadyCount,
		TotalCount:    status.TotalCount,
		AllReady:      status.AllReady,
		InitialBudget: status.InitialBudget,
		TotalBudget:   status.TotalBudget,
		Participants:  participants,
	}

	if status.FinalizedOrderID != nil {
		finalizedOrderID := status.FinalizedOrderID.String()
		response.FinalizedOrderID = &finalizedOrderID
	}

	return response
}
