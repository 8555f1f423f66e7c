package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterWarehouseCommandIsNotConstructed = errors.New(
	"RegisterWarehouseCommand must be created via NewRegisterWarehouseCommand constructor",
)

// RegisterWarehouseCommand adds a warehouse to a seller's allocation list.
type RegisterWarehouseCommand struct {
	sellerID kernel.UUID
	address  string
	priority int

	guard guard.ConstructorGuard
}

// NewRegisterWarehouseCommand leaves address and priority validation to
// inventory.NewWarehouse.
func NewRegisterWarehouseCommand(sellerID kernel.UUID, address string, priority int) (RegisterWarehouseCommand, error) {
	if err := sellerID.Validate(); err != nil {
		return RegisterWarehouseCommand{}, err
	}

	return RegisterWarehouseCommand{
		sellerID: sellerID,
		address:  address,
		priority: priority,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWarehouseCommandIsNotConstructed)
}

func (c RegisterWarehouseCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c RegisterWarehouseCommand) Address() string {
	return c.address
}

func (c RegisterWarehouseCommand) Priority() int {
	return c.priority
}
