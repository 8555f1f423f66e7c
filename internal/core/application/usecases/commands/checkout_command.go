package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCartIsEmpty               = errs.NewValueIsRequiredError("cart")
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")
)

// CheckoutCommand turns a customer's cart into an order tree.
//
// Example:
//
//	line, _ := order.NewCartLine(productID, sellerID, 2, price)
//	cmd, err := NewCheckoutCommand(customerID, []order.CartLine{line}, "221B Baker Street")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	parentOrderID, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID      kernel.UUID
	lines           []order.CartLine
	deliveryAddress string

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(customerID kernel.UUID, lines []order.CartLine, deliveryAddress string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Lines returns a copy of the cart lines.
func (c CheckoutCommand) Lines() []order.CartLine {
	lines := make([]order.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setLines(lines []order.CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	c.lines = make([]order.CartLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrDeliveryAddressIsRequired
	}
	c.deliveryAddress = address
	return nil
}
