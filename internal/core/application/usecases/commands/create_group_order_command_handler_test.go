package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/domain/services"
	"grouporder/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGroupOrderRepository struct{ mock.Mock }

func (m *MockGroupOrderRepository) Add(ctx context.Context, g *grouporder.GroupOrder) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupOrderRepository) Update(ctx context.Context, g *grouporder.GroupOrder) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupOrderRepository) Get(ctx context.Context, id kernel.UUID) (*grouporder.GroupOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grouporder.GroupOrder), args.Error(1)
}

func (m *MockGroupOrderRepository) GetByShareToken(
	ctx context.Context,
	token grouporder.ShareToken,
) (*grouporder.GroupOrder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grouporder.GroupOrder), args.Error(1)
}

func (m *MockGroupOrderRepository) GetAllElapsed(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*grouporder.GroupOrder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grouporder.GroupOrder), args.Error(1)
}

type MockGroupOrderUoW struct{ mock.Mock }

func (m *MockGroupOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGroupOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGroupOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGroupOrderUoW) GroupOrderRepository() ports.GroupOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.GroupOrderRepository)
}

type MockGroupOrderUoWFactory struct{ mock.Mock }

func (m *MockGroupOrderUoWFactory) Create() commands.GroupOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.GroupOrderUoW)
}

type MockCatalogueLookup struct{ mock.Mock }

func (m *MockCatalogueLookup) Dish(ctx context.Context, dishID kernel.UUID) (ports.Dish, error) {
	args := m.Called(ctx, dishID)
	return args.Get(0).(ports.Dish), args.Error(1)
}

type MockPaymentInitiator struct{ mock.Mock }

func (m *MockPaymentInitiator) InitiatePayment(ctx context.Context, order services.ConsolidatedOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Dispatch(
	ctx context.Context,
	event ports.GroupOrderEvent,
	groupOrderID kernel.UUID,
	userIDs []kernel.UUID,
) {
	m.Called(ctx, event, groupOrderID, userIDs)
}

func TestCreateGroupOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	creatorID := kernel.NewUUID()
	cmd, _ := commands.NewCreateGroupOrderCommand(id, creatorID, "Friday lunch", time.Hour, 0)

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*grouporder.GroupOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateGroupOrderCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, id, result.GroupOrderID)
	assert.Len(t, result.ShareToken, 22)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), result.ExpiresAt, 5*time.Second)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateGroupOrderCommandHandler_Handle_CreatorIsNotEnrolled(t *testing.T) {
	ctx := t.Context()
	creatorID := kernel.NewUUID()
	cmd, _ := commands.NewCreateGroupOrderCommand(kernel.NewUUID(), creatorID, "", time.Hour, 500)

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(g *grouporder.GroupOrder) bool {
			// The creator owns the group order but does not appear in the
			// ledger until they join like everyone else.
			return len(g.Participants()) == 0 &&
				g.CreatorID().IsEqual(creatorID) &&
				g.Status() == grouporder.Forming &&
				g.InitialBudget() == 500
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateGroupOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateGroupOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateGroupOrderCommand{} // not constructed properly
	factory := new(MockGroupOrderUoWFactory)
	h := commands.NewCreateGroupOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateGroupOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateGroupOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "t", time.Hour, 0)

	uow := new(MockGroupOrderUoW)
	factory := new(MockGroupOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateGroupOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateGroupOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateGroupOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "t", time.Hour, 0)

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*grouporder.GroupOrder")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateGroupOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateGroupOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateGroupOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "t", time.Hour, 0)

	repo := new(MockGroupOrderRepository)
	uow := new(MockGroupOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("GroupOrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*grouporder.GroupOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockGroupOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateGroupOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
