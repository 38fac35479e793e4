package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrFinalizeGroupOrderCommandIsNotConstructed = errors.New(
	"FinalizeGroupOrderCommand must be created via NewFinalizeGroupOrderCommand constructor",
)

// FinalizeGroupOrderCommand represents the creator's request to consolidate
// all contributions into one order. Force lets the creator finalize before
// everyone declared ready.
type FinalizeGroupOrderCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	actorID      kernel.UUID
	force        bool

	guard guard.ConstructorGuard
}

// NewFinalizeGroupOrderCommand creates a command to finalize a group order.
func NewFinalizeGroupOrderCommand(
	groupOrderID kernel.UUID,
	actorID kernel.UUID,
	force bool,
) (FinalizeGroupOrderCommand, error) {
	cmd := FinalizeGroupOrderCommand{
		force: force,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setActorID(actorID),
	); err != nil {
		return FinalizeGroupOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeGroupOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeGroupOrderCommandIsNotConstructed)
}

// GroupOrderID returns the group order to finalize.
func (c FinalizeGroupOrderCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// ActorID returns the acting identity; must be the creator.
func (c FinalizeGroupOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Force reports whether the creator overrides the all-ready requirement.
func (c FinalizeGroupOrderCommand) Force() bool {
	return c.force
}

func (c *FinalizeGroupOrderCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *FinalizeGroupOrderCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}
