package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ReconcileParentOrdersCommandHandler sweeps unsettled parent orders and
// recomputes each one from its children. Every transition already does this
// in its own transaction; the sweep only repairs parents whose status drifted
// through manual data changes. Running it any number of times is safe.
type ReconcileParentOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ChangeNotifier
}

func NewReconcileParentOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ChangeNotifier,
) ReconcileParentOrdersCommandHandler {
	return ReconcileParentOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns how many parent orders changed status. A failing parent
// does not stop the sweep; all failures are returned joined.
func (h ReconcileParentOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileParentOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().OrderRepository().ListUnsettledIDs(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	var (
		changed int
		errList []error
	)

	for _, id := range ids {
		if ctx.Err() != nil {
			errList = append(errList, ctx.Err())
			break
		}

		ok, err := h.reconcile(ctx, id)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		if ok {
			changed++
		}
	}

	return changed, errors.Join(errList...)
}

func (h ReconcileParentOrdersCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parent, changed, err := syncParentStatus(ctx, uow.OrderRepository(), id)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if changed {
		h.notifier.Notify(ctx, parent, parentEvent(parent, ports.EventParentStatusChanged, time.Now()))
	}

	return changed, nil
}
