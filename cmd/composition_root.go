package cmd

import (
	"context"
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     ports.InventoryLedger
	catalog    ports.WarehouseCatalog
	cache      ports.StatusCache
	notifier   commands.ChangeNotifier
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. publisher and cache may be nil
// when Kafka or Redis are not configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	cache ports.StatusCache,
	logger *slog.Logger,
) CompositionRoot {
	root := CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      cache,
		notifier:   commands.NewChangeNotifier(publisher, cache, logger),
		logger:     logger,
	}

	if cfg.InventoryBackend == InventoryMemory {
		ledger := memory.NewLedger()
		root.ledger, root.catalog = ledger, ledger
	} else {
		ledger := stockrepo.NewGormLedger(gormDB)
		root.ledger, root.catalog = ledger, ledger
	}
	return root
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(c.ledger, f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAdvanceSubOrderCommandHandler() commands.AdvanceSubOrderCommandHandler {
	return commands.NewAdvanceSubOrderCommandHandler(c.uow(), c.ledger, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateClaimDeliveryCommandHandler() commands.ClaimDeliveryCommandHandler {
	return commands.NewClaimDeliveryCommandHandler(c.uow(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.uow(), c.notifier)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.uow(), c.notifier)
}

func (c *CompositionRoot) CreateReconcileParentOrdersCommandHandler() commands.ReconcileParentOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileParentOrdersCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) catalogUoW() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterWarehouseCommandHandler() commands.RegisterWarehouseCommandHandler {
	return commands.NewRegisterWarehouseCommandHandler(c.catalog, c.catalogUoW())
}

func (c *CompositionRoot) CreatePutStockCommandHandler() commands.PutStockCommandHandler {
	return commands.NewPutStockCommandHandler(c.catalog, c.catalogUoW())
}

func (c *CompositionRoot) CreateAddWarehouseStaffCommandHandler() commands.AddWarehouseStaffCommandHandler {
	return commands.NewAddWarehouseStaffCommandHandler(c.catalog, c.catalogUoW())
}

func (c *CompositionRoot) CreateGetParentOrderQueryHandler() queries.GetParentOrderQueryHandler {
	return queries.NewGetParentOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSubOrdersQueryHandler() queries.GetSubOrdersQueryHandler {
	return queries.NewGetSubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParentOrderStatusQueryHandler() queries.GetParentOrderStatusQueryHandler {
	return queries.NewGetParentOrderStatusQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerSubOrdersQueryHandler() queries.GetSellerSubOrdersQueryHandler {
	return queries.NewGetSellerSubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableSubOrdersQueryHandler() queries.GetAvailableSubOrdersQueryHandler {
	return queries.NewGetAvailableSubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierDeliveriesQueryHandler() queries.GetCourierDeliveriesQueryHandler {
	return queries.NewGetCourierDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActionLogsQueryHandler() queries.GetActionLogsQueryHandler {
	return queries.NewGetActionLogsQueryHandler(c.gormDB)
}

// HTTPHandlers collects the use cases served by the REST API.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		Checkout:              c.CreateCheckoutCommandHandler(),
		AdvanceSubOrder:       c.CreateAdvanceSubOrderCommandHandler(),
		ClaimDelivery:         c.CreateClaimDeliveryCommandHandler(),
		UpdateDeliveryStatus:  c.CreateUpdateDeliveryStatusCommandHandler(),
		CancelDelivery:        c.CreateCancelDeliveryCommandHandler(),
		ReconcileParentOrders: c.CreateReconcileParentOrdersCommandHandler(),
		RegisterWarehouse:     c.CreateRegisterWarehouseCommandHandler(),
		PutStock:              c.CreatePutStockCommandHandler(),
		AddWarehouseStaff:     c.CreateAddWarehouseStaffCommandHandler(),

		GetParentOrder:        c.CreateGetParentOrderQueryHandler(),
		GetSubOrders:          c.CreateGetSubOrdersQueryHandler(),
		GetParentOrderStatus:  c.CreateGetParentOrderStatusQueryHandler(),
		GetCustomerOrders:     c.CreateGetCustomerOrdersQueryHandler(),
		GetSellerSubOrders:    c.CreateGetSellerSubOrdersQueryHandler(),
		GetAvailableSubOrders: c.CreateGetAvailableSubOrdersQueryHandler(),
		GetCourierDeliveries:  c.CreateGetCourierDeliveriesQueryHandler(),
		GetActionLogs:         c.CreateGetActionLogsQueryHandler(),

		HealthCheck: c.ping,
	}
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileParentOrdersCommandHandler(),
		c.cfg.ReconcileSchedule,
		c.cfg.ReconcileBatchSize,
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}
