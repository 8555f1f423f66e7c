// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, the inventory ledger, event publishing and
// caching. Implementations live under internal/adapters.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for parent orders and
// their sub-orders.
type OrderRepository interface {
	// Add persists a new parent order together with all sub-orders and items.
	Add(ctx context.Context, parent *order.ParentOrder) error

	// Update persists the parent order header. Only the derived status can
	// change after creation.
	Update(ctx context.Context, parent *order.ParentOrder) error

	// Get retrieves a parent order with all its sub-orders and items.
	Get(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error)

	// GetForUpdate locks the parent order row for the rest of the transaction
	// and returns it with the current state of every sub-order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error)

	// GetSubOrderForUpdate locks and returns one sub-order with its items.
	GetSubOrderForUpdate(ctx context.Context, id kernel.UUID) (*order.SubOrder, error)

	// UpdateSubOrder persists status and assembler of an existing sub-order.
	UpdateSubOrder(ctx context.Context, sub *order.SubOrder) error

	// ListUnsettledIDs returns up to limit ids of parent orders that are not
	// in a final status, oldest first.
	ListUnsettledIDs(ctx context.Context, limit int) ([]kernel.UUID, error)
}
