package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type CartItem struct {
	ProductID openapi_types.UUID `json:"product_id"`
	SellerID  openapi_types.UUID `json:"seller_id"`
	Quantity  int                `json:"quantity"`
	UnitPrice string             `json:"unit_price"`
}

type CheckoutRequest struct {
	CustomerID      openapi_types.UUID `json:"customer_id"`
	DeliveryAddress string             `json:"delivery_address"`
	Items           []CartItem         `json:"items"`
}

type CreatedOrder struct {
	ParentOrderID openapi_types.UUID `json:"parent_order_id"`
}

type AdvanceRequest struct {
	ActorID      openapi_types.UUID `json:"actor_id"`
	ActorRole    string             `json:"actor_role"`
	TargetStatus string             `json:"target_status"`
}

type ClaimRequest struct {
	CourierID         openapi_types.UUID `json:"courier_id"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
}

type Claimed struct {
	AssignmentID openapi_types.UUID `json:"assignment_id"`
}

type DeliveryStatusRequest struct {
	CourierID openapi_types.UUID `json:"courier_id"`
	Status    string             `json:"status"`
}

type CancelDeliveryRequest struct {
	CourierID openapi_types.UUID `json:"courier_id"`
	Reason    string             `json:"reason"`
}

type ReconcileRequest struct {
	BatchSize int `json:"batch_size"`
}

type ReconcileResult struct {
	Changed int `json:"changed"`
}

type RegisterWarehouseRequest struct {
	SellerID openapi_types.UUID `json:"seller_id"`
	Address  string             `json:"address"`
	Priority int                `json:"priority"`
}

type CreatedWarehouse struct {
	WarehouseID openapi_types.UUID `json:"warehouse_id"`
}

type PutStockRequest struct {
	SellerID  openapi_types.UUID `json:"seller_id"`
	ProductID openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
}

type AddStaffRequest struct {
	SellerID openapi_types.UUID `json:"seller_id"`
	WorkerID openapi_types.UUID `json:"worker_id"`
}

type OrderItem struct {
	ProductID openapi_types.UUID `json:"product_id"`
	Quantity  int                `json:"quantity"`
	Price     string             `json:"price"`
}

type SubOrder struct {
	ID              openapi_types.UUID  `json:"id"`
	ParentOrderID   openapi_types.UUID  `json:"parent_order_id"`
	SellerID        openapi_types.UUID  `json:"seller_id"`
	WarehouseID     openapi_types.UUID  `json:"warehouse_id"`
	Status          string              `json:"status"`
	TotalPrice      string              `json:"total_price"`
	DeliveryAddress string              `json:"delivery_address"`
	AssemblerID     *openapi_types.UUID `json:"assembler_id"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItem         `json:"items"`
}

type ParentOrder struct {
	ID              openapi_types.UUID `json:"id"`
	CustomerID      openapi_types.UUID `json:"customer_id"`
	TotalPrice      string             `json:"total_price"`
	DeliveryAddress string             `json:"delivery_address"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	SubOrders       []SubOrder         `json:"sub_orders"`
}

type OrderStatus struct {
	ParentOrderID openapi_types.UUID `json:"parent_order_id"`
	Status        string             `json:"status"`
	Cached        bool               `json:"cached"`
}

type OrderSummary struct {
	ID              openapi_types.UUID `json:"id"`
	TotalPrice      string             `json:"total_price"`
	DeliveryAddress string             `json:"delivery_address"`
	Status          string             `json:"status"`
	SubOrderCount   int                `json:"sub_order_count"`
	CreatedAt       time.Time          `json:"created_at"`
}

type Delivery struct {
	AssignmentID      openapi_types.UUID `json:"assignment_id"`
	SubOrderID        openapi_types.UUID `json:"sub_order_id"`
	ParentOrderID     openapi_types.UUID `json:"parent_order_id"`
	WarehouseID       openapi_types.UUID `json:"warehouse_id"`
	DeliveryAddress   string             `json:"delivery_address"`
	Status            string             `json:"status"`
	EstimatedDelivery time.Time          `json:"estimated_delivery"`
	DeliveredAt       *time.Time         `json:"delivered_at"`
	CancelReason      string             `json:"cancel_reason"`
	ClaimedAt         time.Time          `json:"claimed_at"`
}

type ActionLog struct {
	ID        openapi_types.UUID `json:"id"`
	ActorID   openapi_types.UUID `json:"actor_id"`
	ActorRole string             `json:"actor_role"`
	Action    string             `json:"action"`
	Details   string             `json:"details"`
	CreatedAt time.Time          `json:"created_at"`
}

func toUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func fromUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toSubOrders(views []queries.SubOrderView) []SubOrder {
	subs := make([]SubOrder, 0, len(views))
	for _, v := range views {
		items := make([]OrderItem, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, OrderItem{
				ProductID: toUUID(item.ProductID),
				Quantity:  item.Quantity,
				Price:     item.Price.String(),
			})
		}

		sub := SubOrder{
			ID:              toUUID(v.ID),
			ParentOrderID:   toUUID(v.ParentOrderID),
			SellerID:        toUUID(v.SellerID),
			WarehouseID:     toUUID(v.WarehouseID),
			Status:          v.Status,
			TotalPrice:      v.TotalPrice.String(),
			DeliveryAddress: v.DeliveryAddress,
			CreatedAt:       v.CreatedAt,
			Items:           items,
		}
		if v.AssemblerID != nil {
			assembler := toUUID(*v.AssemblerID)
			sub.AssemblerID = &assembler
		}
		subs = append(subs, sub)
	}
	return subs
}

func toParentOrder(r queries.GetParentOrderQueryResponse) ParentOrder {
	return ParentOrder{
		ID:              toUUID(r.ID),
		CustomerID:      toUUID(r.CustomerID),
		TotalPrice:      r.TotalPrice.String(),
		DeliveryAddress: r.DeliveryAddress,
		Status:          r.Status,
		CreatedAt:       r.CreatedAt,
		SubOrders:       toSubOrders(r.SubOrders),
	}
}

func toDeliveries(rs []queries.GetCourierDeliveriesQueryResponse) []Delivery {
	deliveries := make([]Delivery, 0, len(rs))
	for _, r := range rs {
		deliveries = append(deliveries, Delivery{
			AssignmentID:      toUUID(r.AssignmentID),
			SubOrderID:        toUUID(r.SubOrderID),
			ParentOrderID:     toUUID(r.ParentOrderID),
			WarehouseID:       toUUID(r.WarehouseID),
			DeliveryAddress:   r.DeliveryAddress,
			Status:            r.Status,
			EstimatedDelivery: r.EstimatedDelivery,
			DeliveredAt:       r.DeliveredAt,
			CancelReason:      r.CancelReason,
			ClaimedAt:         r.ClaimedAt,
		})
	}
	return deliveries
}
