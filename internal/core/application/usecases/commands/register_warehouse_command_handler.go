package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

type RegisterWarehouseCommandHandler struct {
	catalog    ports.WarehouseCatalog
	uowFactory CatalogUoWFactory
}

func NewRegisterWarehouseCommandHandler(
	catalog ports.WarehouseCatalog,
	uowFactory CatalogUoWFactory,
) RegisterWarehouseCommandHandler {
	return RegisterWarehouseCommandHandler{
		catalog:    catalog,
		uowFactory: uowFactory,
	}
}

// Handle returns the id of the new warehouse.
func (h RegisterWarehouseCommandHandler) Handle(ctx context.Context, cmd RegisterWarehouseCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	warehouse, err := inventory.NewWarehouse(kernel.NewUUID(), cmd.SellerID(), cmd.Address(), cmd.Priority())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.catalog.RegisterWarehouse(ctx, warehouse); err != nil {
		return kernel.UUID{}, err
	}

	seller, err := actor.NewActor(cmd.SellerID(), actor.Seller)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = recordCatalogAction(ctx, h.uowFactory, seller, audit.ActionRegisterWarehouse, warehouse.ID(),
		fmt.Sprintf("priority %d", warehouse.Priority())); err != nil {
		return kernel.UUID{}, err
	}

	return warehouse.ID(), nil
}

// recordCatalogAction appends one audit entry in its own transaction.
func recordCatalogAction(
	ctx context.Context,
	uowFactory CatalogUoWFactory,
	by actor.Actor,
	action audit.Action,
	subjectID kernel.UUID,
	details string,
) error {
	entry, err := audit.NewEntry(by, action, subjectID, details, time.Now())
	if err != nil {
		return err
	}

	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
