package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type AddWarehouseStaffCommandHandler struct {
	catalog    ports.WarehouseCatalog
	uowFactory CatalogUoWFactory
}

func NewAddWarehouseStaffCommandHandler(
	catalog ports.WarehouseCatalog,
	uowFactory CatalogUoWFactory,
) AddWarehouseStaffCommandHandler {
	return AddWarehouseStaffCommandHandler{
		catalog:    catalog,
		uowFactory: uowFactory,
	}
}

func (h AddWarehouseStaffCommandHandler) Handle(ctx context.Context, cmd AddWarehouseStaffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	seller, err := actor.NewActor(cmd.SellerID(), actor.Seller)
	if err != nil {
		return err
	}

	warehouse, err := h.catalog.Warehouse(ctx, cmd.WarehouseID())
	if err != nil {
		return err
	}
	if !warehouse.IsOwnedBy(seller.ID()) {
		return errs.NewNotAuthorizedError(seller, "warehouse "+warehouse.ID().String())
	}

	entry, err := audit.NewEntry(seller, audit.ActionAddStaff, warehouse.ID(), "worker "+cmd.WorkerID().String(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StaffRepository().Add(ctx, warehouse.ID(), cmd.WorkerID()); err != nil {
		return err
	}
	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
