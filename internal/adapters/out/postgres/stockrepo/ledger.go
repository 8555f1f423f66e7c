package stockrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger implements ports.InventoryLedger and ports.WarehouseCatalog.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// Reserve decrements stock only if enough is available. Row-level locking
// inside the UPDATE serializes concurrent reservations of the same entry;
// different entries never wait for each other.
func (l *GormLedger) Reserve(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	if err := validateReservation(warehouseID, productID, quantity); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).
		Model(&StockEntryDTO{}).
		Where("warehouse_id = ? AND product_id = ? AND quantity >= ?",
			warehouseID.Bytes(), productID.Bytes(), quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		available, err := l.Available(ctx, warehouseID, productID)
		if err != nil {
			return err
		}
		key := inventory.StockKey{WarehouseID: warehouseID, ProductID: productID}
		return inventory.NewInsufficientStockError(key, quantity, available)
	}

	return nil
}

// Release adds quantity back, creating the entry when it does not exist.
func (l *GormLedger) Release(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	if err := validateReservation(warehouseID, productID, quantity); err != nil {
		return err
	}

	dto := StockEntryDTO{
		WarehouseID: warehouseID.Bytes(),
		ProductID:   productID.Bytes(),
		Quantity:    quantity,
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("stock_entries.quantity + EXCLUDED.quantity"),
			}),
		}).
		Create(&dto).Error
}

func (l *GormLedger) Available(ctx context.Context, warehouseID, productID kernel.UUID) (int, error) {
	if err := errors.Join(warehouseID.Validate(), productID.Validate()); err != nil {
		return 0, err
	}

	var dto StockEntryDTO
	err := l.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID.Bytes(), productID.Bytes()).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return dto.Quantity, nil
}

// PriorityList reads the seller's warehouses by (priority, id) and a stock
// snapshot of productIDs in each of them.
func (l *GormLedger) PriorityList(
	ctx context.Context,
	sellerID kernel.UUID,
	productIDs []kernel.UUID,
) ([]inventory.WarehouseStock, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}

	db := l.db.WithContext(ctx)

	var warehouses []WarehouseDTO
	if err := db.Where("seller_id = ?", sellerID.Bytes()).
		Order("priority, id").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	if len(warehouses) == 0 {
		return []inventory.WarehouseStock{}, nil
	}

	warehouseIDs := make([]string, 0, len(warehouses))
	for _, w := range warehouses {
		warehouseIDs = append(warehouseIDs, w.ID.String())
	}
	products := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		products = append(products, id.String())
	}

	var entries []StockEntryDTO
	if err := db.
		Where("warehouse_id = ANY(?::uuid[]) AND product_id = ANY(?::uuid[])",
			pq.Array(warehouseIDs), pq.Array(products)).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	byWarehouse := make(map[uuid.UUID]map[kernel.UUID]int, len(warehouses))
	for _, e := range entries {
		productID, err := kernel.UUIDFromBytes(e.ProductID[:])
		if err != nil {
			return nil, err
		}
		if byWarehouse[e.WarehouseID] == nil {
			byWarehouse[e.WarehouseID] = make(map[kernel.UUID]int)
		}
		byWarehouse[e.WarehouseID][productID] = e.Quantity
	}

	result := make([]inventory.WarehouseStock, 0, len(warehouses))
	for _, w := range warehouses {
		id, err := kernel.UUIDFromBytes(w.ID[:])
		if err != nil {
			return nil, err
		}
		snapshot, err := inventory.NewWarehouseStock(id, byWarehouse[w.ID])
		if err != nil {
			return nil, err
		}
		result = append(result, snapshot)
	}

	return result, nil
}

func (l *GormLedger) RegisterWarehouse(ctx context.Context, w inventory.Warehouse) error {
	if err := w.Validate(); err != nil {
		return err
	}

	dto := warehouseFromDomain(w)
	return l.db.WithContext(ctx).Create(&dto).Error
}

func (l *GormLedger) Warehouse(ctx context.Context, id kernel.UUID) (inventory.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return inventory.Warehouse{}, err
	}

	var dto WarehouseDTO
	if err := l.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return inventory.Warehouse{}, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return inventory.Warehouse{}, err
	}

	return warehouseToDomain(dto)
}

// PutStock overwrites the quantity of an entry.
func (l *GormLedger) PutStock(ctx context.Context, entry inventory.StockEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := StockEntryDTO{
		WarehouseID: entry.WarehouseID().Bytes(),
		ProductID:   entry.ProductID().Bytes(),
		Quantity:    entry.Quantity(),
	}
	return l.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).
		Create(&dto).Error
}

func validateReservation(warehouseID, productID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return errors.Join(warehouseID.Validate(), productID.Validate())
}
