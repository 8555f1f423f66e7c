package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

type DeliveryRepository interface {
	// Add persists a new assignment. It fails with delivery.ErrAlreadyClaimed
	// when the sub-order already has an active assignment.
	Add(ctx context.Context, assignment *delivery.Assignment) error

	Update(ctx context.Context, assignment *delivery.Assignment) error

	// GetActiveBySubOrder returns the active assignment of a sub-order, or an
	// errs.ObjectNotFoundError when there is none.
	GetActiveBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*delivery.Assignment, error)
}
