package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ClaimDeliveryCommandHandler assigns an assembled sub-order to a courier
// and dispatches it. Two couriers racing for the same sub-order are
// serialized on the sub-order row; the loser gets delivery.ErrAlreadyClaimed.
type ClaimDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ChangeNotifier
}

func NewClaimDeliveryCommandHandler(uowFactory UoWFactory, notifier ChangeNotifier) ClaimDeliveryCommandHandler {
	return ClaimDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns the id of the new assignment.
func (h ClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd ClaimDeliveryCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	courier, err := actor.NewActor(cmd.CourierID(), actor.Courier)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	deliveryRepo := uow.DeliveryRepository()

	sub, err := orderRepo.GetSubOrderForUpdate(ctx, cmd.SubOrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	_, err = deliveryRepo.GetActiveBySubOrder(ctx, sub.ID())
	switch {
	case err == nil:
		return kernel.UUID{}, delivery.ErrAlreadyClaimed
	case !errors.Is(err, errs.ErrObjectNotFound):
		return kernel.UUID{}, err
	}

	now := time.Now()
	assignment, err := delivery.Claim(kernel.NewUUID(), sub, cmd.CourierID(), cmd.EstimatedDelivery(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = deliveryRepo.Add(ctx, assignment); err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.UpdateSubOrder(ctx, sub); err != nil {
		return kernel.UUID{}, err
	}

	parent, parentChanged, err := syncParentStatus(ctx, orderRepo, sub.ParentOrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	entry, err := audit.NewEntry(courier, audit.ActionClaimDelivery, sub.ID(), "assignment "+assignment.ID().String(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	events := append(subOrderEvents(sub, parent, parentChanged, now), deliveryEvent(assignment, sub.ParentOrderID(), now))
	h.notifier.Notify(ctx, parent, events...)

	return assignment.ID(), nil
}

func deliveryEvent(a *delivery.Assignment, parentOrderID kernel.UUID, now time.Time) ports.OrderEvent {
	return ports.OrderEvent{
		Type:          ports.EventDeliveryStatusChanged,
		ParentOrderID: parentOrderID,
		SubOrderID:    a.SubOrderID(),
		Status:        a.Status().String(),
		OccurredAt:    now,
	}
}
