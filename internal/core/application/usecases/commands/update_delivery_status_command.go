package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand reports delivery progress: in transit or
// delivered. Giving a delivery up goes through CancelDeliveryCommand.
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	courierID  kernel.UUID
	status     delivery.Status

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryStatusCommand(
	subOrderID, courierID kernel.UUID,
	status delivery.Status,
) (UpdateDeliveryStatusCommand, error) {
	if err := errors.Join(subOrderID.Validate(), courierID.Validate()); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}
	if status != delivery.InTransit && status != delivery.Delivered {
		return UpdateDeliveryStatusCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("%s is not a progress status, expected in_transit or delivered", status),
		)
	}

	return UpdateDeliveryStatusCommand{
		subOrderID: subOrderID,
		courierID:  courierID,
		status:     status,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

func (c UpdateDeliveryStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}
