package services

import (
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// TransitionPolicy decides whether an actor may request a sub-order status.
//
//   - warehouse workers of the sub-order's warehouse start assembly and may
//     cancel; only the worker who started assembly may complete it
//   - the owning seller may cancel
//   - couriers move sub-orders only through delivery assignments, customers never
//
// Whether the transition itself is allowed is the state machine's business;
// the policy only answers who may ask.
type TransitionPolicy struct{}

func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// Authorize returns a NotAuthorizedError when a may not move sub to target.
// isWarehouseStaff reports whether a works at the sub-order's warehouse.
func (p TransitionPolicy) Authorize(
	a actor.Actor,
	sub *order.SubOrder,
	target order.Status,
	isWarehouseStaff bool,
) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := sub.Validate(); err != nil {
		return err
	}

	denied := errs.NewNotAuthorizedError(a, "sub-order "+sub.ID().String()+" to "+target.String())

	switch a.Role() {
	case actor.WarehouseWorker:
		switch target {
		case order.Assembling, order.Cancelled:
			if isWarehouseStaff {
				return nil
			}
		case order.Assembled:
			if sub.AssemblerID() == nil {
				return order.NewInvalidTransitionError(sub.Status(), target)
			}
			if sub.IsAssembledBy(a.ID()) {
				return nil
			}
		default:
		}
	case actor.Seller:
		if target == order.Cancelled && sub.SellerID().IsEqual(a.ID()) {
			return nil
		}
	default:
	}

	return denied
}
