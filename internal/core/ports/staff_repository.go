package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// StaffRepository answers which warehouse a worker belongs to.
type StaffRepository interface {
	// Add makes workerID staff of warehouseID. Adding twice is a no-op.
	Add(ctx context.Context, warehouseID, workerID kernel.UUID) error

	IsWarehouseWorker(ctx context.Context, warehouseID, workerID kernel.UUID) (bool, error)
}
