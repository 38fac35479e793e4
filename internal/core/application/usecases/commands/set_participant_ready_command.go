package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrSetParticipantReadyCommandIsNotConstructed = errors.New(
	"SetParticipantReadyCommand must be created via NewSetParticipantReadyCommand constructor",
)

// SetParticipantReadyCommand represents a request to declare or withdraw a
// participant's readiness.
type SetParticipantReadyCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	actorID      kernel.UUID
	targetUserID kernel.UUID
	ready        bool

	guard guard.ConstructorGuard
}

// NewSetParticipantReadyCommand creates a command to change readiness.
func NewSetParticipantReadyCommand(
	groupOrderID kernel.UUID,
	actorID kernel.UUID,
	targetUserID kernel.UUID,
	ready bool,
) (SetParticipantReadyCommand, error) {
	cmd := SetParticipantReadyCommand{
		ready: ready,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setActorID(actorID),
		cmd.setTargetUserID(targetUserID),
	); err != nil {
		return SetParticipantReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetParticipantReadyCommand) Validate() error {
	return c.guard.Validate(ErrSetParticipantReadyCommandIsNotConstructed)
}

// GroupOrderID returns the group order whose readiness changes.
func (c SetParticipantReadyCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// ActorID returns the acting identity.
func (c SetParticipantReadyCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetUserID returns the participant whose readiness changes.
func (c SetParticipantReadyCommand) TargetUserID() kernel.UUID {
	return c.targetUserID
}

// Ready reports whether readiness is being declared or withdrawn.
func (c SetParticipantReadyCommand) Ready() bool {
	return c.ready
}

func (c *SetParticipantReadyCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *SetParticipantReadyCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *SetParticipantReadyCommand) setTargetUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.targetUserID = id
	return nil
}
