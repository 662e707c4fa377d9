package queries_test

import (
	"context"
	"testing"
	"time"

	"gatebite/internal/adapters/out/postgres/agentrepo"
	"gatebite/internal/core/application/usecases/queries"
	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAgentQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAgentQueryHandler
	agentRepo *agentrepo.GormAgentRepository
}

func (suite *GetAgentQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&agentrepo.AgentDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAgentQueryHandler(db)
	suite.agentRepo = agentrepo.NewGormAgentRepository(db, &mockAggregateTracker{})
}

func (suite *GetAgentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAgentQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE agents CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAgentQueryHandlerTestSuite) TestHandle_AvailableAgent_ReturnsRecord() {
	carrier, err := agent.NewDeliveryAgent(7, "Maya Chen", "AGENT742")
	suite.Require().NoError(err)
	err = suite.agentRepo.Add(context.Background(), carrier)
	suite.Require().NoError(err)

	query, err := queries.NewGetAgentQuery(7)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(7), result.ID)
	suite.Equal("Maya Chen", result.Name)
	suite.Equal("AGENT742", result.Code)
	suite.Equal(agent.StatusAvailable.String(), result.Status)
	suite.Empty(result.CurrentLocation)
}

func (suite *GetAgentQueryHandlerTestSuite) TestHandle_BusyAgent_IncludesLocation() {
	carrier, err := agent.NewDeliveryAgent(8, "Jordan Lee", "AGENT658")
	suite.Require().NoError(err)
	suite.Require().NoError(carrier.Assign("C14"))
	err = suite.agentRepo.Add(context.Background(), carrier)
	suite.Require().NoError(err)

	query, err := queries.NewGetAgentQuery(8)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(agent.StatusBusy.String(), result.Status)
	suite.Equal("C14", result.CurrentLocation)
}

func (suite *GetAgentQueryHandlerTestSuite) TestHandle_UnknownAgent_ReturnsNotFound() {
	query, err := queries.NewGetAgentQuery(999)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetAgentQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetAgentQuery{})

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetAgentQueryIsNotConstructed)
}

func TestGetAgentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAgentQueryHandlerTestSuite))
}
