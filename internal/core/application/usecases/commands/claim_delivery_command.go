package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrClaimDeliveryCommandIsNotConstructed = errors.New(
		"ClaimDeliveryCommand must be created via NewClaimDeliveryCommand constructor",
	)
	ErrEstimatedDeliveryIsRequired = errs.NewValueIsRequiredError("estimated delivery")
)

// ClaimDeliveryCommand is a courier taking an assembled sub-order from the
// job board.
type ClaimDeliveryCommand struct { //nolint:recvcheck //using for validation
	subOrderID        kernel.UUID
	courierID         kernel.UUID
	estimatedDelivery time.Time

	guard guard.ConstructorGuard
}

func NewClaimDeliveryCommand(subOrderID, courierID kernel.UUID, estimatedDelivery time.Time) (ClaimDeliveryCommand, error) {
	cmd := ClaimDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(subOrderID.Validate(), courierID.Validate()); err != nil {
		return ClaimDeliveryCommand{}, err
	}
	if estimatedDelivery.IsZero() {
		return ClaimDeliveryCommand{}, ErrEstimatedDeliveryIsRequired
	}

	cmd.subOrderID = subOrderID
	cmd.courierID = courierID
	cmd.estimatedDelivery = estimatedDelivery
	return cmd, nil
}

func (c ClaimDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrClaimDeliveryCommandIsNotConstructed)
}

func (c ClaimDeliveryCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

func (c ClaimDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c ClaimDeliveryCommand) EstimatedDelivery() time.Time {
	return c.estimatedDelivery
}
