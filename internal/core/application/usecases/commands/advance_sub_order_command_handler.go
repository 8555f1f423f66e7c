package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AdvanceSubOrderCommandHandler moves a sub-order through assembly or
// cancels it, and keeps the parent status in step within the same
// transaction.
//
// A sub-order cancelled before dispatch gives its stock back to its
// warehouse once the cancellation has committed. Cancelling a dispatched
// sub-order withdraws the courier's assignment and restocks nothing: the
// goods have left the warehouse.
//
// Example:
//
//	worker, _ := actor.NewActor(workerID, actor.WarehouseWorker)
//	cmd, _ := NewAdvanceSubOrderCommand(subOrderID, worker, order.Assembling)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotAuthorized):
//	    // worker is not staff of the sub-order's warehouse
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // sub-order is not in created status
//	}
type AdvanceSubOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     ports.InventoryLedger
	notifier   ChangeNotifier
	logger     *slog.Logger
}

func NewAdvanceSubOrderCommandHandler(
	uowFactory UoWFactory,
	ledger ports.InventoryLedger,
	notifier ChangeNotifier,
	logger *slog.Logger,
) AdvanceSubOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AdvanceSubOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		notifier:   notifier,
		logger:     logger.With("component", "advance_sub_order"),
	}
}

func (h AdvanceSubOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceSubOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	sub, err := orderRepo.GetSubOrderForUpdate(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	isStaff := false
	if cmd.Actor().Role() == actor.WarehouseWorker {
		isStaff, err = uow.StaffRepository().IsWarehouseWorker(ctx, sub.WarehouseID(), cmd.Actor().ID())
		if err != nil {
			return err
		}
	}

	if err = services.NewTransitionPolicy().Authorize(cmd.Actor(), sub, cmd.Target(), isStaff); err != nil {
		return err
	}

	from := sub.Status()
	if err = sub.AdvanceTo(cmd.Target(), cmd.Actor().ID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateSubOrder(ctx, sub); err != nil {
		return err
	}

	if from == order.Dispatched && sub.Status() == order.Cancelled {
		if err = h.withdrawAssignment(ctx, uow.DeliveryRepository(), sub, cmd.Actor()); err != nil {
			return err
		}
	}

	parent, parentChanged, err := syncParentStatus(ctx, orderRepo, sub.ParentOrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	entry, err := audit.NewEntry(cmd.Actor(), audit.ActionAdvanceSubOrder, sub.ID(),
		fmt.Sprintf("%s -> %s", from, sub.Status()), now)
	if err != nil {
		return err
	}
	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if sub.Status() == order.Cancelled && from != order.Dispatched {
		h.restock(ctx, sub)
	}

	h.notifier.Notify(ctx, parent, subOrderEvents(sub, parent, parentChanged, now)...)

	return nil
}

func (h AdvanceSubOrderCommandHandler) withdrawAssignment(
	ctx context.Context,
	repo ports.DeliveryRepository,
	sub *order.SubOrder,
	by actor.Actor,
) error {
	assignment, err := repo.GetActiveBySubOrder(ctx, sub.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = assignment.Withdraw("sub-order cancelled by " + by.Role().String()); err != nil {
		return err
	}

	return repo.Update(ctx, assignment)
}

// restock returns the stock of a sub-order cancelled before dispatch. It runs
// after the cancellation committed; a failure only leaves stock unsellable
// and is logged for manual correction.
func (h AdvanceSubOrderCommandHandler) restock(ctx context.Context, sub *order.SubOrder) {
	ctx = context.WithoutCancel(ctx)

	for _, item := range sub.Items() {
		if err := h.ledger.Release(ctx, sub.WarehouseID(), item.ProductID(), item.Quantity()); err != nil {
			h.logger.ErrorContext(ctx, "failed to restock cancelled sub-order",
				"sub_order_id", sub.ID().String(),
				"warehouse_id", sub.WarehouseID().String(),
				"product_id", item.ProductID().String(),
				"quantity", item.Quantity(),
				"error", err,
			)
		}
	}
}
