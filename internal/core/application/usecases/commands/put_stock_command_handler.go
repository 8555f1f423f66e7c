package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// PutStockCommandHandler overwrites a stock level. Only the warehouse owner
// may do it.
type PutStockCommandHandler struct {
	catalog    ports.WarehouseCatalog
	uowFactory CatalogUoWFactory
}

func NewPutStockCommandHandler(catalog ports.WarehouseCatalog, uowFactory CatalogUoWFactory) PutStockCommandHandler {
	return PutStockCommandHandler{
		catalog:    catalog,
		uowFactory: uowFactory,
	}
}

func (h PutStockCommandHandler) Handle(ctx context.Context, cmd PutStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	seller, err := actor.NewActor(cmd.SellerID(), actor.Seller)
	if err != nil {
		return err
	}

	entry := cmd.Entry()
	warehouse, err := h.catalog.Warehouse(ctx, entry.WarehouseID())
	if err != nil {
		return err
	}
	if !warehouse.IsOwnedBy(seller.ID()) {
		return errs.NewNotAuthorizedError(seller, "warehouse "+warehouse.ID().String())
	}

	if err = h.catalog.PutStock(ctx, entry); err != nil {
		return err
	}

	return recordCatalogAction(ctx, h.uowFactory, seller, audit.ActionPutStock, warehouse.ID(),
		fmt.Sprintf("product %s = %d", entry.ProductID(), entry.Quantity()))
}
