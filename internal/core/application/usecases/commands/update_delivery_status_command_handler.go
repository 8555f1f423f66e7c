package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateDeliveryStatusCommandHandler records delivery progress reported by
// the assigned courier. Delivering also delivers the sub-order and
// recomputes the parent.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	notifier   ChangeNotifier
}

func NewUpdateDeliveryStatusCommandHandler(uowFactory UoWFactory, notifier ChangeNotifier) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	courier, err := actor.NewActor(cmd.CourierID(), actor.Courier)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	sub, err := orderRepo.GetSubOrderForUpdate(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	assignment, err := deliveryRepo.GetActiveBySubOrder(ctx, sub.ID())
	if err != nil {
		return err
	}

	if err = assignment.CheckCourier(cmd.CourierID()); err != nil {
		return err
	}

	now := time.Now()
	from := assignment.Status()

	if cmd.Status() == delivery.Delivered {
		err = assignment.Deliver(sub, now)
	} else {
		err = assignment.StartTransit()
	}
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, assignment); err != nil {
		return err
	}

	var (
		parent        *order.ParentOrder
		parentChanged bool
		events        []ports.OrderEvent
	)

	if cmd.Status() == delivery.Delivered {
		if err = orderRepo.UpdateSubOrder(ctx, sub); err != nil {
			return err
		}
		if parent, parentChanged, err = syncParentStatus(ctx, orderRepo, sub.ParentOrderID()); err != nil {
			return err
		}
		events = subOrderEvents(sub, parent, parentChanged, now)
	}

	entry, err := audit.NewEntry(courier, audit.ActionUpdateDelivery, sub.ID(),
		from.String()+" -> "+assignment.Status().String(), now)
	if err != nil {
		return err
	}
	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, parent, append(events, deliveryEvent(assignment, sub.ParentOrderID(), now))...)

	return nil
}
