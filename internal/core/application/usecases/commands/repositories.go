// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	StaffRepoFactory interface {
		StaffRepository() ports.StaffRepository
	}

	ActionLogRepoFactory interface {
		ActionLogRepository() ports.ActionLogRepository
	}

	// OrderUoW manages transactions that only touch order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CheckoutUoW persists a new order tree together with its audit entry.
	CheckoutUoW interface {
		TxManager
		OrderRepoFactory
		ActionLogRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// CatalogUoW records warehouse catalog changes: staff membership and
	// their audit entries.
	CatalogUoW interface {
		TxManager
		StaffRepoFactory
		ActionLogRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// UoW manages transactions across sub-orders, deliveries and staff.
	// Used by every command that moves a sub-order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   sub, err := uow.OrderRepository().GetSubOrderForUpdate(ctx, id)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		StaffRepoFactory
		ActionLogRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
