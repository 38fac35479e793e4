package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var (
	ErrChipInToBudgetCommandIsNotConstructed = errors.New(
		"ChipInToBudgetCommand must be created via NewChipInToBudgetCommand constructor",
	)
	ErrChipInAmountIsInvalid = errors.New("chip-in amount must be greater than 0")
)

// ChipInToBudgetCommand represents a request to add money to a group order's
// shared budget bucket. Contributions are additive and never withdrawn.
type ChipInToBudgetCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	actorID      kernel.UUID
	amount       int64

	guard guard.ConstructorGuard
}

// NewChipInToBudgetCommand creates a command to chip in to the budget.
func NewChipInToBudgetCommand(
	groupOrderID kernel.UUID,
	actorID kernel.UUID,
	amount int64,
) (ChipInToBudgetCommand, error) {
	cmd := ChipInToBudgetCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setActorID(actorID),
		cmd.setAmount(amount),
	); err != nil {
		return ChipInToBudgetCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChipInToBudgetCommand) Validate() error {
	return c.guard.Validate(ErrChipInToBudgetCommandIsNotConstructed)
}

// GroupOrderID returns the group order whose budget grows.
func (c ChipInToBudgetCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// ActorID returns the contributing participant.
func (c ChipInToBudgetCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Amount returns the contributed amount.
func (c ChipInToBudgetCommand) Amount() int64 {
	return c.amount
}

func (c *ChipInToBudgetCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *ChipInToBudgetCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *ChipInToBudgetCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrChipInAmountIsInvalid
	}
	c.amount = amount
	return nil
}
