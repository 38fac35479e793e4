package services

import (
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
)

// groupDiscountPercentage is applied when two or more participants contributed
// items, matching the product's group ordering incentive.
const groupDiscountPercentage = 25

// ConsolidatedLine is one line of the consolidated order, tagged with the
// participant who contributed it.
type ConsolidatedLine struct {
	UserID              kernel.UUID
	DishID              kernel.UUID
	Name                string
	Quantity            int
	UnitPrice           int64
	Subtotal            int64
	SpecialInstructions string
}

// ConsolidatedOrder is the single order produced by finalizing a group order.
// Amounts are in minor currency units.
type ConsolidatedOrder struct {
	ID                 kernel.UUID
	GroupOrderID       kernel.UUID
	CreatorID          kernel.UUID
	Lines              []ConsolidatedLine
	Total              int64
	DiscountPercentage int
	DiscountAmount     int64
	FinalTotal         int64
}

// OrderConsolidator merges every participant's items into one ordered list and
// computes the totals handed to the payment collaborator.
type OrderConsolidator struct{}

// NewOrderConsolidator creates an order consolidator.
func NewOrderConsolidator() *OrderConsolidator {
	return &OrderConsolidator{}
}

// Consolidate flattens the participant ledger into one consolidated order.
// Lines keep join order, then each participant's item order. Participants with
// empty item lists contribute nothing and do not count toward the group
// discount threshold.
func (c *OrderConsolidator) Consolidate(
	g *grouporder.GroupOrder,
	consolidatedOrderID kernel.UUID,
) (ConsolidatedOrder, error) {
	if err := g.Validate(); err != nil {
		return ConsolidatedOrder{}, err
	}
	if err := consolidatedOrderID.Validate(); err != nil {
		return ConsolidatedOrder{}, err
	}

	order := ConsolidatedOrder{
		ID:           consolidatedOrderID,
		GroupOrderID: g.ID(),
		CreatorID:    g.CreatorID(),
	}

	contributors := 0
	for _, p := range g.Participants() {
		if !p.HasItems() {
			continue
		}
		contributors++
		for _, item := range p.Items() {
			order.Lines = append(order.Lines, ConsolidatedLine{
				UserID:              p.UserID(),
				DishID:              item.DishID(),
				Name:                item.Name(),
				Quantity:            item.Quantity(),
				UnitPrice:           item.UnitPrice(),
				Subtotal:            item.Subtotal(),
				SpecialInstructions: item.SpecialInstructions(),
			})
			order.Total += item.Subtotal()
		}
	}

	if len(order.Lines) == 0 {
		return ConsolidatedOrder{}, grouporder.ErrNothingToFinalize
	}

	if contributors >= 2 {
		order.DiscountPercentage = groupDiscountPercentage
		order.DiscountAmount = order.Total * groupDiscountPercentage / 100
	}
	order.FinalTotal = order.Total - order.DiscountAmount

	return order, nil
}
