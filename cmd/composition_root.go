package cmd

import (
	"log/slog"

	"grouporder/internal/adapters/out/catalogue"
	"grouporder/internal/adapters/out/notifier"
	"grouporder/internal/adapters/out/payments"
	"grouporder/internal/adapters/out/postgres"
	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/application/usecases/queries"
	"grouporder/internal/core/domain/services"
	"grouporder/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	catalogueClient ports.CatalogueLookup
	paymentClient   ports.PaymentInitiator
	dispatcher      ports.NotificationDispatcher

	consolidator *services.OrderConsolidator
	aggregator   *services.ReadinessAggregator

	logger *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      postgres.NewGormUnitOfWorkFactory(gormDB),
		catalogueClient: catalogue.NewClient(config.CatalogueServiceURL),
		paymentClient:   payments.NewClient(config.PaymentServiceURL),
		dispatcher:      notifier.NewSlogNotificationDispatcher(logger),
		consolidator:    services.NewOrderConsolidator(),
		aggregator:      services.NewReadinessAggregator(),
		logger:          logger,
	}
}

func (c *CompositionRoot) groupOrderUoWFactory() commands.GroupOrderUoWFactory {
	return FuncGroupOrderUoWFactory(func() commands.GroupOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateGroupOrderCommandHandler() commands.CreateGroupOrderCommandHandler {
	return commands.NewCreateGroupOrderCommandHandler(c.groupOrderUoWFactory())
}

func (c *CompositionRoot) CreateJoinGroupOrderCommandHandler() commands.JoinGroupOrderCommandHandler {
	return commands.NewJoinGroupOrderCommandHandler(c.groupOrderUoWFactory())
}

func (c *CompositionRoot) CreateChangeParticipantItemsCommandHandler() commands.ChangeParticipantItemsCommandHandler {
	return commands.NewChangeParticipantItemsCommandHandler(c.groupOrderUoWFactory(), c.catalogueClient)
}

func (c *CompositionRoot) CreateSetParticipantReadyCommandHandler() commands.SetParticipantReadyCommandHandler {
	return commands.NewSetParticipantReadyCommandHandler(c.groupOrderUoWFactory(), c.aggregator)
}

func (c *CompositionRoot) CreateChipInToBudgetCommandHandler() commands.ChipInToBudgetCommandHandler {
	return commands.NewChipInToBudgetCommandHandler(c.groupOrderUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeGroupOrderCommandHandler() commands.FinalizeGroupOrderCommandHandler {
	return commands.NewFinalizeGroupOrderCommandHandler(
		c.groupOrderUoWFactory(),
		c.consolidator,
		c.paymentClient,
		c.dispatcher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCancelGroupOrderCommandHandler() commands.CancelGroupOrderCommandHandler {
	return commands.NewCancelGroupOrderCommandHandler(c.groupOrderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateReapExpiredGroupOrdersCommandHandler() commands.ReapExpiredGroupOrdersCommandHandler {
	return commands.NewReapExpiredGroupOrdersCommandHandler(
		c.groupOrderUoWFactory(),
		c.dispatcher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetGroupOrderStatusQueryHandler() queries.GetGroupOrderStatusQueryHandler {
	return queries.NewGetGroupOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveShareTokenQueryHandler() queries.ResolveShareTokenQueryHandler {
	return queries.NewResolveShareTokenQueryHandler(c.gormDB)
}

type FuncGroupOrderUoWFactory func() commands.GroupOrderUoW

func (f FuncGroupOrderUoWFactory) Create() commands.GroupOrderUoW {
	return f()
}
