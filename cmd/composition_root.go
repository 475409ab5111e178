package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, configs.LockTimeout),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateBulkAssignCommandHandler() *commands.BulkAssignCommandHandler {
	return commands.NewBulkAssignCommandHandler(c.newUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateRetryFailedCommandHandler() *commands.RetryFailedCommandHandler {
	return commands.NewRetryFailedCommandHandler(c.newUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetUnassignedOrdersQueryHandler() queries.GetUnassignedOrdersQueryHandler {
	return queries.NewGetUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentResultsQueryHandler() queries.GetAssignmentResultsQueryHandler {
	return queries.NewGetAssignmentResultsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the REST adapter.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()

	return http.NewServer(http.Handlers{
		BulkAssign:        c.CreateBulkAssignCommandHandler(),
		RetryFailed:       c.CreateRetryFailedCommandHandler(),
		CreateOrder:       &createOrder,
		CreateCourier:     &createCourier,
		UnassignedOrders:  c.CreateGetUnassignedOrdersQueryHandler(),
		AvailableCouriers: c.CreateGetAvailableCouriersQueryHandler(),
		AssignmentResults: c.CreateGetAssignmentResultsQueryHandler(),
	}, c.configs.BatchSize, c.configs.RetryCeiling)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateBulkAssignCommandHandler(),
		c.CreateRetryFailedCommandHandler(),
		jobs.Schedules{
			Assignment: c.configs.AssignmentSchedule,
			Retry:      c.configs.RetrySchedule,
		},
		c.configs.BatchSize,
		c.configs.RetryCeiling,
		c.logger,
	)
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
