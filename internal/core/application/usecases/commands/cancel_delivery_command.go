package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelDeliveryCommandIsNotConstructed = errors.New(
	"CancelDeliveryCommand must be created via NewCancelDeliveryCommand constructor",
)

// CancelDeliveryCommand is a courier giving a claimed sub-order up, with a
// reason. The sub-order returns to the job board.
type CancelDeliveryCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	courierID  kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelDeliveryCommand(subOrderID, courierID kernel.UUID, reason string) (CancelDeliveryCommand, error) {
	if err := errors.Join(subOrderID.Validate(), courierID.Validate()); err != nil {
		return CancelDeliveryCommand{}, err
	}
	if strings.TrimSpace(reason) == "" {
		return CancelDeliveryCommand{}, delivery.ErrCancelReasonIsRequired
	}

	return CancelDeliveryCommand{
		subOrderID: subOrderID,
		courierID:  courierID,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCancelDeliveryCommandIsNotConstructed)
}

func (c CancelDeliveryCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

func (c CancelDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CancelDeliveryCommand) Reason() string {
	return c.reason
}
