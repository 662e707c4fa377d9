package queries_test

import (
	"context"
	"testing"
	"time"

	"gatebite/internal/adapters/out/postgres/agentrepo"
	"gatebite/internal/adapters/out/postgres/orderrepo"
	"gatebite/internal/core/application/usecases/queries"
	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListAgentOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListAgentOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
	agentRepo *agentrepo.GormAgentRepository
	testAgent *agent.DeliveryAgent
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &agentrepo.AgentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListAgentOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.agentRepo = agentrepo.NewGormAgentRepository(db, &mockAggregateTracker{})
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, agents CASCADE").Error
	suite.Require().NoError(err)

	suite.testAgent, err = agent.NewDeliveryAgent(7, "Maya Chen", "AGENT742")
	suite.Require().NoError(err)
	err = suite.agentRepo.Add(context.Background(), suite.testAgent)
	suite.Require().NoError(err)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TestHandle_UnknownAgent_ReturnsNotFound() {
	query, err := queries.NewListAgentOrdersQuery(999)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(result)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TestHandle_AgentWithNoOrders_ReturnsEmptySlice() {
	query, err := queries.NewListAgentOrdersQuery(suite.testAgent.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TestHandle_ExcludesTerminalAndForeignOrders() {
	active := suite.assignedOrder("ORD-200001", suite.testAgent.ID())

	finished := suite.assignedOrder("ORD-200002", suite.testAgent.ID())
	suite.deliver(finished)
	err := suite.orderRepo.Update(context.Background(), finished)
	suite.Require().NoError(err)

	other, err := agent.NewDeliveryAgent(8, "Jordan Lee", "AGENT658")
	suite.Require().NoError(err)
	err = suite.agentRepo.Add(context.Background(), other)
	suite.Require().NoError(err)
	suite.assignedOrder("ORD-200003", other.ID())

	query, err := queries.NewListAgentOrdersQuery(suite.testAgent.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID().String(), result[0].ID)
	suite.Equal(order.AgentAssigned.String(), result[0].Status)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TestHandle_OrdersSortedNewestFirst() {
	oldest := suite.assignedOrder("ORD-200010", suite.testAgent.ID())
	middle := suite.assignedOrder("ORD-200011", suite.testAgent.ID())
	newest := suite.assignedOrder("ORD-200012", suite.testAgent.ID())

	query, err := queries.NewListAgentOrdersQuery(suite.testAgent.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(newest.ID().String(), result[0].ID)
	suite.Equal(middle.ID().String(), result[1].ID)
	suite.Equal(oldest.ID().String(), result[2].ID)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.ListAgentOrdersQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrListAgentOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) assignedOrder(confirmationCode string, agentID int64) *order.Order {
	assigned, err := order.NewOrder(
		kernel.NewUUID(),
		confirmationCode,
		3,
		"Skyline Tacos",
		"Alex Rivera",
		"alex@example.com",
		"B22",
		"UA1847",
		time.Now().UTC().Add(20*time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(assigned.Advance(order.RestaurantPreparing))
	suite.Require().NoError(assigned.AssignAgent(agentID))
	err = suite.orderRepo.Add(context.Background(), assigned)
	suite.Require().NoError(err)
	return assigned
}

func (suite *ListAgentOrdersQueryHandlerTestSuite) deliver(assigned *order.Order) {
	agentID := *assigned.Agent()
	suite.Require().NoError(assigned.MarkPickedUp(agentID))
	suite.Require().NoError(assigned.MarkInTransit(agentID))
	suite.Require().NoError(assigned.Deliver(agentID, *assigned.DeliveryOTP()))
}

func TestListAgentOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListAgentOrdersQueryHandlerTestSuite))
}
