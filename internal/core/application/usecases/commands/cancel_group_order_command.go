package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrCancelGroupOrderCommandIsNotConstructed = errors.New(
	"CancelGroupOrderCommand must be created via NewCancelGroupOrderCommand constructor",
)

// CancelGroupOrderCommand represents the creator's request to close a group
// order without producing an order.
type CancelGroupOrderCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelGroupOrderCommand creates a command to cancel a group order.
func NewCancelGroupOrderCommand(groupOrderID, actorID kernel.UUID) (CancelGroupOrderCommand, error) {
	cmd := CancelGroupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setActorID(actorID),
	); err != nil {
		return CancelGroupOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelGroupOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelGroupOrderCommandIsNotConstructed)
}

// GroupOrderID returns the group order to cancel.
func (c CancelGroupOrderCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// ActorID returns the acting identity; must be the creator.
func (c CancelGroupOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *CancelGroupOrderCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *CancelGroupOrderCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
