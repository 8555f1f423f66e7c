package inventory

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrWarehouseIsNotConstructed  = errors.New("Warehouse must be created via NewWarehouse constructor")
	ErrWarehouseAddressIsRequired = errs.NewValueIsRequiredError("warehouse address")
)

// Warehouse belongs to exactly one seller. Among a seller's warehouses the
// lower priority is allocated first; equal priorities fall back to id order.
type Warehouse struct {
	id            kernel.UUID
	sellerID      kernel.UUID
	address       string
	priority      int
	isConstructed bool
}

func NewWarehouse(id, sellerID kernel.UUID, address string, priority int) (Warehouse, error) {
	if err := errors.Join(id.Validate(), sellerID.Validate()); err != nil {
		return Warehouse{}, err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Warehouse{}, ErrWarehouseAddressIsRequired
	}
	if priority < 0 {
		return Warehouse{}, errs.NewValueIsOutOfRangeError("priority", priority, 0, "unbounded")
	}

	return Warehouse{
		id:            id,
		sellerID:      sellerID,
		address:       address,
		priority:      priority,
		isConstructed: true,
	}, nil
}

func (w Warehouse) ID() kernel.UUID {
	return w.id
}

func (w Warehouse) SellerID() kernel.UUID {
	return w.sellerID
}

func (w Warehouse) Address() string {
	return w.address
}

func (w Warehouse) Priority() int {
	return w.priority
}

// IsOwnedBy reports whether sellerID owns the warehouse.
func (w Warehouse) IsOwnedBy(sellerID kernel.UUID) bool {
	return w.sellerID.IsEqual(sellerID)
}

func (w Warehouse) Validate() error {
	if !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}
	return nil
}
