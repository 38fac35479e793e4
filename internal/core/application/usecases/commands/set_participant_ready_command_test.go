package commands_test

import (
	"testing"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetParticipantReadyCommand_ValidInput(t *testing.T) {
	groupOrderID := kernel.NewUUID()
	userID := kernel.NewUUID()
	cmd, err := commands.NewSetParticipantReadyCommand(groupOrderID, userID, userID, true)
	require.NoError(t, err)
	assert.Equal(t, groupOrderID, cmd.GroupOrderID())
	assert.Equal(t, userID, cmd.ActorID())
	assert.Equal(t, userID, cmd.TargetUserID())
	assert.True(t, cmd.Ready())
}

func TestNewSetParticipantReadyCommand_InvalidActorID(t *testing.T) {
	_, err := commands.NewSetParticipantReadyCommand(kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestSetParticipantReadyCommand_ValidateNotConstructed(t *testing.T) {
	cmd := commands.SetParticipantReadyCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrSetParticipantReadyCommandIsNotConstructed)
}
