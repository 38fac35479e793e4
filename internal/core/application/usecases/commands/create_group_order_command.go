package commands

import (
	"errors"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/guard"
)

var (
	ErrCreateGroupOrderCommandIsNotConstructed = errors.New(
		"CreateGroupOrderCommand must be created via NewCreateGroupOrderCommand constructor",
	)
	ErrTTLIsInvalid           = errors.New("ttl must be greater than 0")
	ErrInitialBudgetIsInvalid = errors.New("initial budget must not be negative")
)

// CreateGroupOrderCommand represents a request to start a new group order.
// The creator becomes the owning identity; a share token is minted as part of
// handling so others can join.
type CreateGroupOrderCommand struct { //nolint:recvcheck //using for validation
	groupOrderID  kernel.UUID
	creatorID     kernel.UUID
	title         string
	ttl           time.Duration
	initialBudget int64

	guard guard.ConstructorGuard
}

// NewCreateGroupOrderCommand creates a command to start a group order.
// Title may be empty; TTL must be positive; the initial budget seeds the
// shared budget bucket and may be zero.
func NewCreateGroupOrderCommand(
	groupOrderID kernel.UUID,
	creatorID kernel.UUID,
	title string,
	ttl time.Duration,
	initialBudget int64,
) (CreateGroupOrderCommand, error) {
	cmd := CreateGroupOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setGroupOrderID(groupOrderID),
		cmd.setCreatorID(creatorID),
		cmd.setTTL(ttl),
		cmd.setInitialBudget(initialBudget),
	); err != nil {
		return CreateGroupOrderCommand{}, err
	}
	cmd.title = title

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateGroupOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateGroupOrderCommandIsNotConstructed)
}

// GroupOrderID returns the identifier for the new group order.
func (c CreateGroupOrderCommand) GroupOrderID() kernel.UUID {
	return c.groupOrderID
}

// CreatorID returns the owning identity.
func (c CreateGroupOrderCommand) CreatorID() kernel.UUID {
	return c.creatorID
}

// Title returns the display title, possibly empty.
func (c CreateGroupOrderCommand) Title() string {
	return c.title
}

// TTL returns the group order's time to live.
func (c CreateGroupOrderCommand) TTL() time.Duration {
	return c.ttl
}

// InitialBudget returns the amount seeding the shared budget bucket.
func (c CreateGroupOrderCommand) InitialBudget() int64 {
	return c.initialBudget
}

func (c *CreateGroupOrderCommand) setGroupOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.groupOrderID = id
	return nil
}

func (c *CreateGroupOrderCommand) setCreatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.creatorID = id
	return nil
}

func (c *CreateGroupOrderCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return ErrTTLIsInvalid
	}
	c.ttl = ttl
	return nil
}

func (c *CreateGroupOrderCommand) setInitialBudget(initialBudget int64) error {
	if initialBudget < 0 {
		return ErrInitialBudgetIsInvalid
	}
	c.initialBudget = initialBudget
	return nil
}
