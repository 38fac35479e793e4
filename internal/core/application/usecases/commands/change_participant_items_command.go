package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrChangeParticipantItemsCommandIsNotConstructed = errors.New(
	"ChangeParticipantItemsCommand must be created via NewChangeParticipantItemsCommand constructor",
)

// ChangeParticipantItemsCommand represents a request to replace one
// participant's item list. The actor must be the participant; an empty list
// clears the contribution.
type ChangeParticipantItemsCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	actorID      kernel.UUID
	targetUserID kernel.UUID
	items        []ItemSpec

	guard guard.ConstructorGuard
}

// NewChangeParticipantItemsCommand creates a command to replace a
// participant's items.
func NewChangeParticipantItemsCommand(
	groupOrderID kernel.UUID,
	actorID kernel.UUID,
	targetUserID kernel.UUID,
	items []ItemSpec,
) (ChangeParticipantItemsCommand, error) {
	cmd := ChangeParticipantItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setActorID(actorID),
		cmd.setTargetUserID(targetUserID),
		cmd.setItems(items),
	); err != nil {
		return ChangeParticipantItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeParticipantItemsCommand) Validate() error {
	return c.guard.Validate(ErrChangeParticipantItemsCommandIsNotConstructed)
}

// GroupOrderID returns the group order whose ledger is edited.
func (c ChangeParticipantItemsCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// ActorID returns the acting identity.
func (c ChangeParticipantItemsCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetUserID returns the participant whose items are replaced.
func (c ChangeParticipantItemsCommand) TargetUserID() kernel.UUID {
	return c.targetUserID
}

// Items returns the requested item specs; may be empty.
func (c ChangeParticipantItemsCommand) Items() []ItemSpec {
	return c.items
}

func (c *ChangeParticipantItemsCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *ChangeParticipantItemsCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *ChangeParticipantItemsCommand) setTargetUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.targetUserID = id
	return nil
}

func (c *ChangeParticipantItemsCommand) setItems(items []ItemSpec) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = make([]ItemSpec, len(items))
	copy(c.items, items)
	return nil
}
