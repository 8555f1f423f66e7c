package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")

// OrderItem is an immutable line of a SubOrder. Its quantity is exactly what
// was reserved from the sub-order's warehouse for the product.
type OrderItem struct {
	subOrderID    kernel.UUID
	productID     kernel.UUID
	quantity      int
	price         kernel.Money
	isConstructed bool
}

// NewOrderItem creates an item; price is the unit price.
func NewOrderItem(subOrderID, productID kernel.UUID, quantity int, price kernel.Money) (OrderItem, error) {
	if err := errors.Join(
		subOrderID.Validate(),
		productID.Validate(),
		validatePositiveQuantity(quantity),
		price.Validate(),
	); err != nil {
		return OrderItem{}, err
	}

	return OrderItem{
		subOrderID:    subOrderID,
		productID:     productID,
		quantity:      quantity,
		price:         price,
		isConstructed: true,
	}, nil
}

func (i OrderItem) SubOrderID() kernel.UUID {
	return i.subOrderID
}

func (i OrderItem) ProductID() kernel.UUID {
	return i.productID
}

func (i OrderItem) Quantity() int {
	return i.quantity
}

func (i OrderItem) Price() kernel.Money {
	return i.price
}

// Total returns quantity x price.
func (i OrderItem) Total() kernel.Money {
	return i.price.Times(i.quantity)
}

func (i OrderItem) Validate() error {
	if !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}
