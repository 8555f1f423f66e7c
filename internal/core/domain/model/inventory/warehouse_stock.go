package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrWarehouseStockIsNotConstructed = errors.New("WarehouseStock must be created via NewWarehouseStock constructor")

// WarehouseStock is a planning snapshot of one warehouse: the quantities it
// held for the requested products when the snapshot was read. Reservations are
// always re-validated against the live ledger, never against this snapshot.
type WarehouseStock struct {
	warehouseID   kernel.UUID
	available     map[kernel.UUID]int
	isConstructed bool
}

// NewWarehouseStock copies available so later changes to the map do not leak
// into the snapshot. Products missing from the map have 0 units.
func NewWarehouseStock(warehouseID kernel.UUID, available map[kernel.UUID]int) (WarehouseStock, error) {
	if err := warehouseID.Validate(); err != nil {
		return WarehouseStock{}, err
	}

	snapshot := make(map[kernel.UUID]int, len(available))
	for productID, quantity := range available {
		if quantity < 0 {
			return WarehouseStock{}, errs.NewValueIsOutOfRangeErrorWithCause(
				"available", quantity, 0, "unbounded",
				fmt.Errorf("product %s in warehouse %s", productID, warehouseID),
			)
		}
		snapshot[productID] = quantity
	}

	return WarehouseStock{
		warehouseID:   warehouseID,
		available:     snapshot,
		isConstructed: true,
	}, nil
}

func (w WarehouseStock) WarehouseID() kernel.UUID {
	return w.warehouseID
}

// Available returns the snapshot quantity of productID.
func (w WarehouseStock) Available(productID kernel.UUID) int {
	return w.available[productID]
}

// Covers reports whether the warehouse alone holds every requested quantity.
func (w WarehouseStock) Covers(requested map[kernel.UUID]int) bool {
	for productID, quantity := range requested {
		if w.available[productID] < quantity {
			return false
		}
	}
	return true
}

func (w WarehouseStock) Validate() error {
	if !w.isConstructed {
		return ErrWarehouseStockIsNotConstructed
	}
	return nil
}
