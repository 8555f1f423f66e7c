package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via Claim or RestoreAssignment")

	// ErrNotAssemblyReady is returned when a courier claims a sub-order that is
	// not assembled.
	ErrNotAssemblyReady = errors.New("sub-order is not ready for delivery")

	// ErrAlreadyClaimed is returned when the sub-order already has an active
	// assignment.
	ErrAlreadyClaimed = errors.New("sub-order is already claimed by a courier")

	// ErrNotAssignedCourier is returned when a courier touches an assignment
	// that is not theirs.
	ErrNotAssignedCourier = fmt.Errorf("%w: courier is not assigned to this delivery", errs.ErrNotAuthorized)

	ErrCancelReasonIsRequired = errs.NewValueIsRequiredError("cancel reason")
)

// Assignment binds one courier to one sub-order for delivery.
type Assignment struct {
	id                kernel.UUID
	subOrderID        kernel.UUID
	courierID         kernel.UUID
	status            Status
	estimatedDelivery time.Time
	deliveredAt       *time.Time
	cancelReason      string
	createdAt         time.Time
	isConstructed     bool
}

// Claim dispatches an assembled sub-order to courierID and returns the new
// assignment. The sub-order is left untouched when the claim is rejected.
//
// Uniqueness of the active assignment is not checked here; callers must hold
// the sub-order lock and look for an active assignment first.
func Claim(
	id kernel.UUID,
	sub *order.SubOrder,
	courierID kernel.UUID,
	estimatedDelivery, now time.Time,
) (*Assignment, error) {
	if err := errors.Join(id.Validate(), sub.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if estimatedDelivery.IsZero() {
		return nil, errs.NewValueIsRequiredError("estimated delivery")
	}
	if sub.Status() != order.Assembled {
		return nil, fmt.Errorf("%w: sub-order %s is %s", ErrNotAssemblyReady, sub.ID(), sub.Status())
	}

	if err := sub.Dispatch(); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                id,
		subOrderID:        sub.ID(),
		courierID:         courierID,
		status:            Assigned,
		estimatedDelivery: estimatedDelivery.UTC(),
		createdAt:         now.UTC(),
		isConstructed:     true,
	}, nil
}

// RestoreAssignment rebuilds a persisted assignment.
func RestoreAssignment(
	id, subOrderID, courierID kernel.UUID,
	status Status,
	estimatedDelivery time.Time,
	deliveredAt *time.Time,
	cancelReason string,
	createdAt time.Time,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		subOrderID.Validate(),
		courierID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	a := &Assignment{
		id:                id,
		subOrderID:        subOrderID,
		courierID:         courierID,
		status:            status,
		estimatedDelivery: estimatedDelivery.UTC(),
		cancelReason:      cancelReason,
		createdAt:         createdAt.UTC(),
		isConstructed:     true,
	}
	if deliveredAt != nil {
		at := deliveredAt.UTC()
		a.deliveredAt = &at
	}
	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) SubOrderID() kernel.UUID {
	return a.subOrderID
}

func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) EstimatedDelivery() time.Time {
	return a.estimatedDelivery
}

func (a *Assignment) DeliveredAt() *time.Time {
	if a.deliveredAt == nil {
		return nil
	}
	at := *a.deliveredAt
	return &at
}

func (a *Assignment) CancelReason() string {
	return a.cancelReason
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// IsActive reports whether the assignment still holds its sub-order.
func (a *Assignment) IsActive() bool {
	return a.status.IsActive()
}

// CheckCourier returns ErrNotAssignedCourier unless courierID owns the assignment.
func (a *Assignment) CheckCourier(courierID kernel.UUID) error {
	if !a.courierID.IsEqual(courierID) {
		return fmt.Errorf("%w (courier %s, assignment %s)", ErrNotAssignedCourier, courierID, a.id)
	}
	return nil
}

// StartTransit moves Assigned -> InTransit.
func (a *Assignment) StartTransit() error {
	next, err := a.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}
	a.status = next
	return nil
}

// Deliver completes the assignment and the sub-order together.
func (a *Assignment) Deliver(sub *order.SubOrder, now time.Time) error {
	if err := a.checkSubOrder(sub); err != nil {
		return err
	}

	next, err := a.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}
	if err = sub.Deliver(); err != nil {
		return err
	}

	at := now.UTC()
	a.status = next
	a.deliveredAt = &at
	return nil
}

// CancelByCourier gives the sub-order up: it returns to assembled and can be
// claimed again.
func (a *Assignment) CancelByCourier(sub *order.SubOrder, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrCancelReasonIsRequired
	}
	if err := a.checkSubOrder(sub); err != nil {
		return err
	}

	next, err := a.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	if err = sub.RevertDispatch(); err != nil {
		return err
	}

	a.status = next
	a.cancelReason = reason
	return nil
}

// Withdraw cancels the assignment because its sub-order was cancelled
// upstream. The sub-order is not touched.
func (a *Assignment) Withdraw(reason string) error {
	next, err := a.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	a.status = next
	a.cancelReason = reason
	return nil
}

func (a *Assignment) checkSubOrder(sub *order.SubOrder) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	if !sub.ID().IsEqual(a.subOrderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"sub-order",
			fmt.Errorf("assignment %s is for sub-order %s, not %s", a.id, a.subOrderID, sub.ID()),
		)
	}
	return nil
}
