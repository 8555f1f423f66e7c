package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReconcileParentOrdersCommandIsNotConstructed = errors.New(
	"ReconcileParentOrdersCommand must be created via NewReconcileParentOrdersCommand constructor",
)

// ReconcileParentOrdersCommand recomputes the status of up to batchSize
// unsettled parent orders.
type ReconcileParentOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewReconcileParentOrdersCommand(batchSize int) (ReconcileParentOrdersCommand, error) {
	if batchSize <= 0 {
		return ReconcileParentOrdersCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ReconcileParentOrdersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileParentOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileParentOrdersCommandIsNotConstructed)
}

func (c ReconcileParentOrdersCommand) BatchSize() int {
	return c.batchSize
}
