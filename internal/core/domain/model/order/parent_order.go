package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrParentOrderIsNotConstructed is returned when a ParentOrder instance
	// was not created through NewParentOrder or RestoreParentOrder.
	ErrParentOrderIsNotConstructed = errors.New("ParentOrder must be created via NewParentOrder constructor")

	// ErrSubOrdersAreRequired is returned when a checkout would produce no sub-orders.
	ErrSubOrdersAreRequired = errs.NewValueIsRequiredError("sub-orders")
)

// ParentOrder is the customer-facing order produced by one checkout. It owns
// the sub-orders the cart was split into, and its status is never set
// directly: it is always derived from the children through Recompute.
type ParentOrder struct {
	id              kernel.UUID
	customerID      kernel.UUID
	totalPrice      kernel.Money
	deliveryAddress string
	status          Status
	createdAt       time.Time
	subOrders       []*SubOrder
	isConstructed   bool
}

// NewParentOrder creates a parent order over freshly built sub-orders. The
// total price is the sum of the sub-orders' totals.
func NewParentOrder(
	id, customerID kernel.UUID,
	deliveryAddress string,
	createdAt time.Time,
	subOrders []*SubOrder,
) (*ParentOrder, error) {
	parent := &ParentOrder{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		parent.setIDs(id, customerID),
		parent.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	if len(subOrders) == 0 {
		return nil, ErrSubOrdersAreRequired
	}
	if err := parent.setSubOrders(subOrders); err != nil {
		return nil, err
	}

	total := kernel.ZeroMoney()
	for _, sub := range parent.subOrders {
		total = total.Add(sub.TotalPrice())
	}
	parent.totalPrice = total
	parent.Recompute()

	return parent, nil
}

// RestoreParentOrder rebuilds a persisted parent order. subOrders may be nil
// when the caller only needs the header row.
func RestoreParentOrder(
	id, customerID kernel.UUID,
	totalPrice kernel.Money,
	deliveryAddress string,
	status Status,
	createdAt time.Time,
	subOrders []*SubOrder,
) (*ParentOrder, error) {
	parent := &ParentOrder{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		parent.setIDs(id, customerID),
		parent.setDeliveryAddress(deliveryAddress),
		totalPrice.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := parent.setSubOrders(subOrders); err != nil {
		return nil, err
	}

	parent.totalPrice = totalPrice
	parent.status = status
	return parent, nil
}

func (p *ParentOrder) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParentOrderIsNotConstructed
	}
	return nil
}

func (p *ParentOrder) ID() kernel.UUID {
	return p.id
}

func (p *ParentOrder) CustomerID() kernel.UUID {
	return p.customerID
}

func (p *ParentOrder) TotalPrice() kernel.Money {
	return p.totalPrice
}

func (p *ParentOrder) DeliveryAddress() string {
	return p.deliveryAddress
}

func (p *ParentOrder) Status() Status {
	return p.status
}

func (p *ParentOrder) CreatedAt() time.Time {
	return p.createdAt
}

// SubOrders returns the loaded sub-orders. The pointers are shared with the
// aggregate.
func (p *ParentOrder) SubOrders() []*SubOrder {
	subs := make([]*SubOrder, len(p.subOrders))
	copy(subs, p.subOrders)
	return subs
}

// Recompute derives the status from the loaded sub-orders and reports
// whether it changed. Without loaded sub-orders the status is kept.
func (p *ParentOrder) Recompute() bool {
	if len(p.subOrders) == 0 {
		return false
	}

	statuses := make([]Status, 0, len(p.subOrders))
	for _, sub := range p.subOrders {
		statuses = append(statuses, sub.Status())
	}

	next := DeriveParentStatus(statuses...)
	if next == p.status {
		return false
	}
	p.status = next
	return true
}

func (p *ParentOrder) setIDs(id, customerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return err
	}
	p.id = id
	p.customerID = customerID
	return nil
}

func (p *ParentOrder) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrDeliveryAddressIsRequired
	}
	p.deliveryAddress = address
	return nil
}

func (p *ParentOrder) setSubOrders(subOrders []*SubOrder) error {
	for _, sub := range subOrders {
		if err := sub.Validate(); err != nil {
			return err
		}
		if !sub.ParentOrderID().IsEqual(p.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"sub-order parent id",
				fmt.Errorf("sub-order %s belongs to %s, not %s", sub.ID(), sub.ParentOrderID(), p.id),
			)
		}
	}

	p.subOrders = make([]*SubOrder, len(subOrders))
	copy(p.subOrders, subOrders)
	return nil
}
