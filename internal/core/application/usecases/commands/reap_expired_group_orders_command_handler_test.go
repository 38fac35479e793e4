package commands_test

import (
	"testing"
	"time"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/ports"
	"grouporder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReapExpiredGroupOrdersCommandHandler_Handle_SweepsElapsed(t *testing.T) {
	ctx := t.Context()
	first := groupOrderForTest(t, kernel.NewUUID(), grouporder.Collecting, time.Now().UTC().Add(-time.Minute),
		participantForTest(t, kernel.NewUUID(), nil, false))
	second := groupOrderForTest(t, kernel.NewUUID(), grouporder.Forming, time.Now().UTC().Add(-time.Hour))

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("GetAllElapsed", mock.Anything, mock.Anything, 100).
			Return([]*grouporder.GroupOrder{first, second}, nil).Once(),
		repo.On("Update", mock.Anything, first).Return(nil).Once(),
		repo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Dispatch", mock.Anything, ports.EventGroupOrderExpired, first.ID(), mock.Anything).Once()
	notifier.On("Dispatch", mock.Anything, ports.EventGroupOrderExpired, second.ID(), mock.Anything).Once()

	h := commands.NewReapExpiredGroupOrdersCommandHandler(factory, notifier, discardLogger())
	cmd := commands.NewReapExpiredGroupOrdersCommand()
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, grouporder.Expired, first.Status())
	assert.Equal(t, grouporder.Expired, second.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReapExpiredGroupOrdersCommandHandler_Handle_EmptySweep(t *testing.T) {
	ctx := t.Context()

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("GetAllElapsed", mock.Anything, mock.Anything, 100).
			Return([]*grouporder.GroupOrder{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)

	h := commands.NewReapExpiredGroupOrdersCommandHandler(factory, notifier, discardLogger())
	cmd := commands.NewReapExpiredGroupOrdersCommand()
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Dispatch")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReapExpiredGroupOrdersCommandHandler_Handle_SkipsVersionConflicts(t *testing.T) {
	ctx := t.Context()
	contested := groupOrderForTest(t, kernel.NewUUID(), grouporder.Collecting, time.Now().UTC().Add(-time.Minute))
	clean := groupOrderForTest(t, kernel.NewUUID(), grouporder.Collecting, time.Now().UTC().Add(-time.Minute))

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("GetAllElapsed", mock.Anything, mock.Anything, 100).
			Return([]*grouporder.GroupOrder{contested, clean}, nil).Once(),
		repo.On("Update", mock.Anything, contested).
			Return(errs.NewConcurrencyConflictError("groupOrder", contested.ID().String())).Once(),
		repo.On("Update", mock.Anything, clean).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationDispatcher)
	notifier.On("Dispatch", mock.Anything, ports.EventGroupOrderExpired, clean.ID(), mock.Anything).Once()

	h := commands.NewReapExpiredGroupOrdersCommandHandler(factory, notifier, discardLogger())
	cmd := commands.NewReapExpiredGroupOrdersCommand()
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertNumberOfCalls(t, "Dispatch", 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
