package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// syncParentStatus recomputes a parent's status inside the caller's
// transaction. The parent row is locked before the children are read, so
// concurrent sub-order changes under the same parent are applied one after
// another and the last one always sees every committed sibling.
func syncParentStatus(
	ctx context.Context,
	repo ports.OrderRepository,
	parentID kernel.UUID,
) (*order.ParentOrder, bool, error) {
	parent, err := repo.GetForUpdate(ctx, parentID)
	if err != nil {
		return nil, false, err
	}

	if !parent.Recompute() {
		return parent, false, nil
	}

	if err = repo.Update(ctx, parent); err != nil {
		return nil, false, err
	}

	return parent, true, nil
}
