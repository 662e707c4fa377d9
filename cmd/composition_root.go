package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"gatebite/internal/adapters/in/ws"
	"gatebite/internal/adapters/out/postgres"
	"gatebite/internal/core/application/usecases/commands"
	"gatebite/internal/core/application/usecases/queries"
	"gatebite/internal/jobs"
	"gatebite/internal/pkg/keylock"
)

// CompositionRoot wires adapters to use cases. All mutating handlers share
// one keyed mutex (per-order serialization) and one hub (status fan-out).
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *keylock.KeyedMutex
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      keylock.NewKeyedMutex(),
		hub:        ws.NewHub(),
		logger:     logger,
	}
}

// Hub returns the broadcast hub serving the tracking WebSocket endpoint.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateMarkInTransitCommandHandler() commands.MarkInTransitCommandHandler {
	return commands.NewMarkInTransitCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateAutoAssignAgentCommandHandler() commands.AutoAssignAgentCommandHandler {
	return commands.NewAutoAssignAgentCommandHandler(c.crossUoWFactory(), c.locks, c.hub)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByConfirmationQueryHandler() queries.GetOrderByConfirmationQueryHandler {
	return queries.NewGetOrderByConfirmationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAgentOrdersQueryHandler() queries.ListAgentOrdersQueryHandler {
	return queries.NewListAgentOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentQueryHandler() queries.GetAgentQueryHandler {
	return queries.NewGetAgentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAutoAssignAgentCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
