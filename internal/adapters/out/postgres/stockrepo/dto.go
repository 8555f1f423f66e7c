// Package stockrepo is the PostgreSQL inventory ledger and warehouse
// catalog. Every reservation is a single conditional UPDATE that commits on
// its own, outside any unit of work.
package stockrepo

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type WarehouseDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index:ix_warehouses_seller_priority,priority:1"`
	Address  string    `gorm:"type:text;not null"`
	Priority int       `gorm:"type:int;not null;index:ix_warehouses_seller_priority,priority:2"`
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// StockEntryDTO is one row of stock_entries. The check constraint backs the
// ledger's guarantee that stock never goes negative.
type StockEntryDTO struct {
	WarehouseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity    int       `gorm:"type:int;not null;check:chk_stock_entries_quantity,quantity >= 0"`
}

func (StockEntryDTO) TableName() string {
	return "stock_entries"
}

func warehouseFromDomain(w inventory.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID:       w.ID().Bytes(),
		SellerID: w.SellerID().Bytes(),
		Address:  w.Address(),
		Priority: w.Priority(),
	}
}

func warehouseToDomain(dto WarehouseDTO) (inventory.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return inventory.Warehouse{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return inventory.Warehouse{}, err
	}
	return inventory.NewWarehouse(id, sellerID, dto.Address, dto.Priority)
}
