package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrStockEntryIsNotConstructed = errors.New("StockEntry must be created via NewStockEntry constructor")

// StockKey identifies a StockEntry.
type StockKey struct {
	WarehouseID kernel.UUID
	ProductID   kernel.UUID
}

func (k StockKey) String() string {
	return fmt.Sprintf("%s/%s", k.WarehouseID, k.ProductID)
}

// StockEntry is the available quantity of a product in a warehouse.
type StockEntry struct {
	key           StockKey
	quantity      int
	isConstructed bool
}

func NewStockEntry(warehouseID, productID kernel.UUID, quantity int) (StockEntry, error) {
	if err := errors.Join(
		warehouseID.Validate(),
		productID.Validate(),
		validateQuantity(quantity),
	); err != nil {
		return StockEntry{}, err
	}

	return StockEntry{
		key:           StockKey{WarehouseID: warehouseID, ProductID: productID},
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

func (e StockEntry) Key() StockKey {
	return e.key
}

func (e StockEntry) WarehouseID() kernel.UUID {
	return e.key.WarehouseID
}

func (e StockEntry) ProductID() kernel.UUID {
	return e.key.ProductID
}

func (e StockEntry) Quantity() int {
	return e.quantity
}

func (e StockEntry) Validate() error {
	if !e.isConstructed {
		return ErrStockEntryIsNotConstructed
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	return nil
}
