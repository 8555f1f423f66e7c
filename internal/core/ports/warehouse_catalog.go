package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// WarehouseCatalog manages sellers' warehouses and their stock levels.
// Reservations go through InventoryLedger only.
type WarehouseCatalog interface {
	RegisterWarehouse(ctx context.Context, warehouse inventory.Warehouse) error

	// Warehouse returns an errs.ObjectNotFoundError for unknown ids.
	Warehouse(ctx context.Context, id kernel.UUID) (inventory.Warehouse, error)

	// PutStock overwrites the quantity of a stock entry, creating it if needed.
	PutStock(ctx context.Context, entry inventory.StockEntry) error
}
