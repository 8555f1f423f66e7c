package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPutStockCommandIsNotConstructed = errors.New(
	"PutStockCommand must be created via NewPutStockCommand constructor",
)

// PutStockCommand is a seller setting the on-hand quantity of a product in
// one of their warehouses.
type PutStockCommand struct {
	sellerID kernel.UUID
	entry    inventory.StockEntry

	guard guard.ConstructorGuard
}

func NewPutStockCommand(sellerID, warehouseID, productID kernel.UUID, quantity int) (PutStockCommand, error) {
	if err := sellerID.Validate(); err != nil {
		return PutStockCommand{}, err
	}

	entry, err := inventory.NewStockEntry(warehouseID, productID, quantity)
	if err != nil {
		return PutStockCommand{}, err
	}

	return PutStockCommand{
		sellerID: sellerID,
		entry:    entry,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c PutStockCommand) Validate() error {
	return c.guard.Validate(ErrPutStockCommandIsNotConstructed)
}

func (c PutStockCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c PutStockCommand) Entry() inventory.StockEntry {
	return c.entry
}
