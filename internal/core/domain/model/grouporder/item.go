package grouporder

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"
)

const maxItemQuantity = 99

// Item is a value object describing one dish contributed by a participant.
// Name and unit price are snapshotted from the catalogue at contribution time
// so a later menu change does not silently reprice a frozen group order.
// Unit price is in minor currency units (pence).
type Item struct {
	dishID              kernel.UUID
	name                string
	quantity            int
	unitPrice           int64
	specialInstructions string
}

// NewItem creates a validated Item.
// Quantity must be in [1, 99] and unit price must not be negative.
func NewItem(
	dishID kernel.UUID,
	name string,
	quantity int,
	unitPrice int64,
	specialInstructions string,
) (Item, error) {
	if err := dishID.Validate(); err != nil {
		return Item{}, err
	}

	if err := errors.Join(
		validateItemName(name),
		validateItemQuantity(quantity),
		validateItemUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return Item{
		dishID:              dishID,
		name:                name,
		quantity:            quantity,
		unitPrice:           unitPrice,
		specialInstructions: specialInstructions,
	}, nil
}

// DishID returns the catalogue identifier of the dish.
func (i Item) DishID() kernel.UUID {
	return i.dishID
}

// Name returns the dish name as snapshotted from the catalogue.
func (i Item) Name() string {
	return i.name
}

// Quantity returns how many units of the dish were requested.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// SpecialInstructions returns the free-text preparation note, empty if none.
func (i Item) SpecialInstructions() string {
	return i.specialInstructions
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() int64 {
	return int64(i.quantity) * i.unitPrice
}

func validateItemName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	return nil
}

func validateItemQuantity(quantity int) error {
	if quantity < 1 || quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	return nil
}

func validateItemUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidError("unit price")
	}
	return nil
}
