package commands

import (
	"errors"

	"grouporder/internal/pkg/guard"
)

var ErrReapExpiredGroupOrdersCommandIsNotConstructed = errors.New(
	"ReapExpiredGroupOrdersCommand must be created via NewReapExpiredGroupOrdersCommand constructor",
)

// ReapExpiredGroupOrdersCommand triggers a sweep over group orders whose TTL
// elapsed while still in a non-terminal status.
//
// Example:
//
//	cmd := NewReapExpiredGroupOrdersCommand()
//	handler := NewReapExpiredGroupOrdersCommandHandler(uowFactory, notifier, logger)
//
//	// Run periodically from the scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("expiry sweep failed: %v", err)
//	}
type ReapExpiredGroupOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewReapExpiredGroupOrdersCommand creates a command to trigger an expiry
// sweep. This is a parameterless command that processes all elapsed group
// orders.
func NewReapExpiredGroupOrdersCommand() ReapExpiredGroupOrdersCommand {
	return ReapExpiredGroupOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReapExpiredGroupOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReapExpiredGroupOrdersCommandIsNotConstructed)
}
