package commands

import (
	"context"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
	"grouporder/internal/pkg/errs"
)

// ItemSpec is a participant's requested line before catalogue resolution:
// which dish, how many, and any preparation note. Name and price come from the
// catalogue collaborator, never from the client.
type ItemSpec struct {
	DishID              kernel.UUID
	Quantity            int
	SpecialInstructions string
}

// Validate checks the spec's own fields; catalogue existence is checked later.
func (s ItemSpec) Validate() error {
	if err := s.DishID.Validate(); err != nil {
		return err
	}
	if s.Quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}
	return nil
}

// resolveItems turns item specs into priced domain items by consulting the
// catalogue. Fails on the first dish the catalogue does not know.
func resolveItems(ctx context.Context, catalogue ports.CatalogueLookup, specs []ItemSpec) ([]grouporder.Item, error) {
	items := make([]grouporder.Item, 0, len(specs))
	for _, spec := range specs {
		dish, err := catalogue.Dish(ctx, spec.DishID)
		if err != nil {
			return nil, err
		}

		item, err := grouporder.NewItem(dish.ID, dish.Name, spec.Quantity, dish.UnitPrice, spec.SpecialInstructions)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
