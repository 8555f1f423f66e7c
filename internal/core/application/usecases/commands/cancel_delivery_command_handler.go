package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
)

// CancelDeliveryCommandHandler releases a courier from a sub-order. The
// assignment keeps the reason, and the sub-order goes back to assembled.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ChangeNotifier
}

func NewCancelDeliveryCommandHandler(uowFactory UoWFactory, notifier ChangeNotifier) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
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

	if err = assignment.CancelByCourier(sub, cmd.Reason()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, assignment); err != nil {
		return err
	}

	if err = orderRepo.UpdateSubOrder(ctx, sub); err != nil {
		return err
	}

	parent, parentChanged, err := syncParentStatus(ctx, orderRepo, sub.ParentOrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	entry, err := audit.NewEntry(courier, audit.ActionCancelDelivery, sub.ID(), cmd.Reason(), now)
	if err != nil {
		return err
	}
	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	events := append(subOrderEvents(sub, parent, parentChanged, now), deliveryEvent(assignment, sub.ParentOrderID(), now))
	h.notifier.Notify(ctx, parent, events...)

	return nil
}
