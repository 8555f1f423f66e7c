package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventOrderCheckedOut       EventType = "OrderCheckedOut"
	EventSubOrderStatusChanged EventType = "SubOrderStatusChanged"
	EventParentStatusChanged   EventType = "ParentOrderStatusChanged"
	EventDeliveryStatusChanged EventType = "DeliveryStatusChanged"
)

// OrderEvent is a fact about an order tree, published after the change
// committed. SubOrderID is the zero UUID for parent-level events.
type OrderEvent struct {
	Type          EventType
	ParentOrderID kernel.UUID
	SubOrderID    kernel.UUID
	Status        string
	OccurredAt    time.Time
}

// EventPublisher delivers order events to downstream consumers. Events of
// the same parent order keep their relative order.
type EventPublisher interface {
	Publish(ctx context.Context, events ...OrderEvent) error
}

// StatusCache keeps the latest derived status of parent orders.
type StatusCache interface {
	// GetParentStatus returns ok=false on a cache miss.
	GetParentStatus(ctx context.Context, parentOrderID kernel.UUID) (status string, ok bool, err error)
	SetParentStatus(ctx context.Context, parentOrderID kernel.UUID, status string) error
}
