package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/actionlogrepo"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/staffrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&stockrepo.WarehouseDTO{},
		&stockrepo.StockEntryDTO{},
		&staffrepo.WarehouseStaffDTO{},
		&orderrepo.ParentOrderDTO{},
		&orderrepo.SubOrderDTO{},
		&orderrepo.OrderItemDTO{},
		&deliveryrepo.AssignmentDTO{},
		&actionlogrepo.ActionLogDTO{},
	)
}

// Tables lists the migrated tables, children first.
func Tables() []string {
	return []string{
		"action_logs",
		"delivery_assignments",
		"order_items",
		"sub_orders",
		"parent_orders",
		"warehouse_staff",
		"stock_entries",
		"warehouses",
	}
}
