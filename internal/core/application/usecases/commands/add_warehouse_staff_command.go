package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAddWarehouseStaffCommandIsNotConstructed = errors.New(
	"AddWarehouseStaffCommand must be created via NewAddWarehouseStaffCommand constructor",
)

// AddWarehouseStaffCommand lets a seller allow a worker to assemble the
// sub-orders of one of their warehouses.
type AddWarehouseStaffCommand struct {
	sellerID    kernel.UUID
	warehouseID kernel.UUID
	workerID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddWarehouseStaffCommand(sellerID, warehouseID, workerID kernel.UUID) (AddWarehouseStaffCommand, error) {
	if err := errors.Join(sellerID.Validate(), warehouseID.Validate(), workerID.Validate()); err != nil {
		return AddWarehouseStaffCommand{}, err
	}

	return AddWarehouseStaffCommand{
		sellerID:    sellerID,
		warehouseID: warehouseID,
		workerID:    workerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddWarehouseStaffCommand) Validate() error {
	return c.guard.Validate(ErrAddWarehouseStaffCommandIsNotConstructed)
}

func (c AddWarehouseStaffCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c AddWarehouseStaffCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c AddWarehouseStaffCommand) WorkerID() kernel.UUID {
	return c.workerID
}
