package queries_test

import (
	"context"
	"testing"
	"time"

	"grouporder/internal/adapters/out/postgres/grouporderrepo"
	"grouporder/internal/core/application/usecases/queries"
	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ResolveShareTokenQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ResolveShareTokenQueryHandler
	repo      *grouporderrepo.GormGroupOrderRepository
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&grouporderrepo.GroupOrderDTO{},
		&grouporderrepo.ParticipantDTO{},
		&grouporderrepo.ItemDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewResolveShareTokenQueryHandler(db)
	suite.repo = grouporderrepo.NewGormGroupOrderRepository(db, &mockAggregateTracker{})
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE group_orders, group_order_participants, group_order_items").Error
	suite.Require().NoError(err)
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) TestHandle_ResolvesToken() {
	ctx := context.Background()
	g, err := grouporder.NewGroupOrder(
		kernel.NewUUID(), kernel.NewUUID(), "Friday lunch", 0, time.Now().UTC(), time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, g))

	query, err := queries.NewResolveShareTokenQuery(g.ShareToken().String())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(result.GroupOrderID.IsEqual(g.ID()))
	suite.True(result.CreatorID.IsEqual(g.CreatorID()))
	suite.Equal("Friday lunch", result.Title)
	suite.Equal("forming", result.Status)
	suite.WithinDuration(g.ExpiresAt(), result.ExpiresAt, time.Second)
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) TestHandle_UnknownToken() {
	token, err := grouporder.MintShareToken()
	suite.Require().NoError(err)

	query, err := queries.NewResolveShareTokenQuery(token.String())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) TestHandle_ElapsedTokenReadsAsExpired() {
	ctx := context.Background()
	now := time.Now().UTC()
	g, err := grouporder.NewGroupOrder(
		kernel.NewUUID(), kernel.NewUUID(), "stale", 0, now.Add(-2*time.Hour), time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(ctx, g))

	query, err := queries.NewResolveShareTokenQuery(g.ShareToken().String())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("expired", result.Status)
}

func (suite *ResolveShareTokenQueryHandlerTestSuite) TestHandle_InvalidQuery() {
	invalidQuery := queries.ResolveShareTokenQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewResolveShareTokenQuery constructor")
}

func TestResolveShareTokenQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ResolveShareTokenQueryHandlerTestSuite))
}
