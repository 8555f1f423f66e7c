package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceSubOrderCommandIsNotConstructed = errors.New(
	"AdvanceSubOrderCommand must be created via NewAdvanceSubOrderCommand constructor",
)

// AdvanceSubOrderCommand asks to move a sub-order to target on behalf of an
// actor. Warehouse workers and sellers use it; couriers go through the
// delivery commands instead.
type AdvanceSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	actor      actor.Actor
	target     order.Status

	guard guard.ConstructorGuard
}

func NewAdvanceSubOrderCommand(
	subOrderID kernel.UUID,
	requestedBy actor.Actor,
	target order.Status,
) (AdvanceSubOrderCommand, error) {
	cmd := AdvanceSubOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setActor(requestedBy),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceSubOrderCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceSubOrderCommandIsNotConstructed)
}

func (c AdvanceSubOrderCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

func (c AdvanceSubOrderCommand) Actor() actor.Actor {
	return c.actor
}

func (c AdvanceSubOrderCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceSubOrderCommand) setSubOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.subOrderID = id
	return nil
}

func (c *AdvanceSubOrderCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.actor = a
	return nil
}

func (c *AdvanceSubOrderCommand) setTarget(target order.Status) error {
	if err := target.ValidateSubOrder(); err != nil {
		return err
	}
	c.target = target
	return nil
}
