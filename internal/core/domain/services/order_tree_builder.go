package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderTreeBuilder turns an allocation into a ParentOrder with one SubOrder
// per allocation group. It creates identifiers but does not reserve stock or
// persist anything.
type OrderTreeBuilder struct{}

func NewOrderTreeBuilder() OrderTreeBuilder {
	return OrderTreeBuilder{}
}

// Build creates the order tree in Created status. Groups without items are
// skipped.
func (b OrderTreeBuilder) Build(
	customerID kernel.UUID,
	deliveryAddress string,
	allocation Allocation,
	now time.Time,
) (*order.ParentOrder, error) {
	parentID := kernel.NewUUID()
	subOrders := make([]*order.SubOrder, 0, len(allocation))

	for _, group := range allocation {
		if len(group.Items) == 0 {
			continue
		}

		subID := kernel.NewUUID()
		items := make([]order.OrderItem, 0, len(group.Items))
		for _, allocated := range group.Items {
			item, err := order.NewOrderItem(subID, allocated.ProductID, allocated.Quantity, allocated.UnitPrice)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}

		sub, err := order.NewSubOrder(subID, parentID, group.SellerID, group.WarehouseID, deliveryAddress, now, items)
		if err != nil {
			return nil, err
		}
		subOrders = append(subOrders, sub)
	}

	return order.NewParentOrder(parentID, customerID, deliveryAddress, now, subOrders)
}
