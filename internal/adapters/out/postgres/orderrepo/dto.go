// Package orderrepo persists parent orders, sub-orders and order items with
// GORM and maps them to and from the order aggregate.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParentOrderDTO is one row of parent_orders. Status holds order.Status.
type ParentOrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	Status          int             `gorm:"type:smallint;not null;index"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	SubOrders       []SubOrderDTO   `gorm:"foreignKey:ParentOrderID;constraint:OnDelete:CASCADE"`
}

func (ParentOrderDTO) TableName() string {
	return "parent_orders"
}

// SubOrderDTO is one row of sub_orders.
type SubOrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ParentOrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	Status          int             `gorm:"type:smallint;not null;index"`
	AssemblerID     *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time       `gorm:"not null"`
	Items           []OrderItemDTO  `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`
}

func (SubOrderDTO) TableName() string {
	return "sub_orders"
}

// OrderItemDTO is one row of order_items. Items never change after checkout.
type OrderItemDTO struct {
	SubOrderID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"type:int;not null;check:quantity > 0"`
	Price      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(parent *order.ParentOrder) ParentOrderDTO {
	subs := make([]SubOrderDTO, 0, len(parent.SubOrders()))
	for _, sub := range parent.SubOrders() {
		subs = append(subs, subOrderFromDomain(sub))
	}

	return ParentOrderDTO{
		ID:              parent.ID().Bytes(),
		CustomerID:      parent.CustomerID().Bytes(),
		TotalPrice:      parent.TotalPrice().Amount(),
		DeliveryAddress: parent.DeliveryAddress(),
		Status:          int(parent.Status()),
		CreatedAt:       parent.CreatedAt(),
		SubOrders:       subs,
	}
}

func subOrderFromDomain(sub *order.SubOrder) SubOrderDTO {
	var assemblerID *uuid.UUID
	if id := sub.AssemblerID(); id != nil {
		raw := id.Bytes()
		assemblerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(sub.Items()))
	for _, item := range sub.Items() {
		items = append(items, OrderItemDTO{
			SubOrderID: sub.ID().Bytes(),
			ProductID:  item.ProductID().Bytes(),
			Quantity:   item.Quantity(),
			Price:      item.Price().Amount(),
		})
	}

	return SubOrderDTO{
		ID:              sub.ID().Bytes(),
		ParentOrderID:   sub.ParentOrderID().Bytes(),
		SellerID:        sub.SellerID().Bytes(),
		WarehouseID:     sub.WarehouseID().Bytes(),
		TotalPrice:      sub.TotalPrice().Amount(),
		DeliveryAddress: sub.DeliveryAddress(),
		Status:          int(sub.Status()),
		AssemblerID:     assemblerID,
		CreatedAt:       sub.CreatedAt(),
		Items:           items,
	}
}

// toDomain rebuilds a parent order. dto.SubOrders must already be loaded.
func toDomain(dto ParentOrderDTO) (*order.ParentOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	subs := make([]*order.SubOrder, 0, len(dto.SubOrders))
	for _, subDTO := range dto.SubOrders {
		sub, subErr := subOrderToDomain(subDTO)
		if subErr != nil {
			return nil, subErr
		}
		subs = append(subs, sub)
	}

	return order.RestoreParentOrder(id, customerID, total, dto.DeliveryAddress,
		order.Status(dto.Status), dto.CreatedAt, subs)
}

func subOrderToDomain(dto SubOrderDTO) (*order.SubOrder, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.ParentOrderID, dto.SellerID, dto.WarehouseID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var assemblerID *kernel.UUID
	if dto.AssemblerID != nil {
		id, err := kernel.UUIDFromBytes((*dto.AssemblerID)[:])
		if err != nil {
			return nil, err
		}
		assemblerID = &id
	}

	total, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewOrderItem(ids[0], productID, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreSubOrder(ids[0], ids[1], ids[2], ids[3], total, dto.DeliveryAddress,
		order.Status(dto.Status), assemblerID, dto.CreatedAt, items)
}
