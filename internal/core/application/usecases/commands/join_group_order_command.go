package commands

import (
	"errors"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var ErrJoinGroupOrderCommandIsNotConstructed = errors.New(
	"JoinGroupOrderCommand must be created via NewJoinGroupOrderCommand constructor",
)

// JoinGroupOrderCommand represents a request to add a user to a group order's
// participant ledger. Joining is idempotent per user.
type JoinGroupOrderCommand struct { //nolint:recvcheck //using for validation
	groupOrderID kernel.UUID
	userID       kernel.UUID

	guard guard.ConstructorGuard
}

// NewJoinGroupOrderCommand creates a command to join a group order.
func NewJoinGroupOrderCommand(groupOrderID, userID kernel.UUID) (JoinGroupOrderCommand, error) {
	cmd := JoinGroupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setUserID(userID),
	); err != nil {
		return JoinGroupOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinGroupOrderCommand) Validate() error {
	return c.guard.Validate(ErrJoinGroupOrderCommandIsNotConstructed)
}

// GroupOrderID returns the group order to join.
func (c JoinGroupOrderCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// UserID returns the joining identity.
func (c JoinGroupOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *JoinGroupOrderCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *JoinGroupOrderCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}
