package commands_test

import (
	"testing"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeParticipantItemsCommand_ValidInput(t *testing.T) {
	groupOrderID := kernel.NewUUID()
	userID := kernel.NewUUID()
	specs := []commands.ItemSpec{{DishID: kernel.NewUUID(), Quantity: 2, SpecialInstructions: "no onions"}}

	cmd, err := commands.NewChangeParticipantItemsCommand(groupOrderID, userID, userID, specs)
	require.NoError(t, err)
	assert.Equal(t, groupOrderID, cmd.GroupOrderID())
	assert.Equal(t, userID, cmd.ActorID())
	assert.Equal(t, userID, cmd.TargetUserID())
	assert.Len(t, cmd.Items(), 1)
}

func TestNewChangeParticipantItemsCommand_EmptyListAllowed(t *testing.T) {
	userID := kernel.NewUUID()
	cmd, err := commands.NewChangeParticipantItemsCommand(kernel.NewUUID(), userID, userID, nil)
	require.NoError(t, err)
	assert.Empty(t, cmd.Items())
}

func TestNewChangeParticipantItemsCommand_InvalidQuantity(t *testing.T) {
	userID := kernel.NewUUID()
	specs := []commands.ItemSpec{{DishID: kernel.NewUUID(), Quantity: 0}}
	_, err := commands.NewChangeParticipantItemsCommand(kernel.NewUUID(), userID, userID, specs)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewChangeParticipantItemsCommand_InvalidDishID(t *testing.T) {
	userID := kernel.NewUUID()
	specs := []commands.ItemSpec{{DishID: kernel.UUID{}, Quantity: 1}}
	_, err := commands.NewChangeParticipantItemsCommand(kernel.NewUUID(), userID, userID, specs)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
