package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryLedger is the only component allowed to change stock quantities.
//
// Reserve must be a single atomic check-and-decrement: it either takes the
// whole quantity or fails with *inventory.InsufficientStockError and changes
// nothing. It never waits for stock to appear.
type InventoryLedger interface {
	Reserve(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error

	// Release returns previously reserved units.
	Release(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error

	// Available reads the live quantity. Missing entries hold 0 units.
	Available(ctx context.Context, warehouseID, productID kernel.UUID) (int, error)

	// PriorityList returns the seller's warehouses in allocation order with a
	// snapshot of the requested products. The snapshot is for planning only.
	PriorityList(ctx context.Context, sellerID kernel.UUID, productIDs []kernel.UUID) ([]inventory.WarehouseStock, error)
}
