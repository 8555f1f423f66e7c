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
	// ErrSubOrderIsNotConstructed is returned when a SubOrder instance was not
	// created through NewSubOrder or RestoreSubOrder.
	ErrSubOrderIsNotConstructed = errors.New("SubOrder must be created via NewSubOrder constructor")

	// ErrDeliveryAddressIsRequired is returned for an empty delivery address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("delivery address")

	// ErrItemsAreRequired is returned when a sub-order would carry no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// SubOrder is the unit of fulfillment: the part of a checkout that one seller
// ships from one warehouse. It progresses through assembly, dispatch and
// delivery independently of its siblings.
//
// SubOrder follows these invariants:
//   - exactly one seller and one warehouse
//   - at least one item, at most one item per product
//   - total price equals the sum of its items' totals
//   - items never change after construction
//   - the assembler is bound when assembly starts and never changes afterwards
type SubOrder struct {
	id              kernel.UUID
	parentOrderID   kernel.UUID
	sellerID        kernel.UUID
	warehouseID     kernel.UUID
	totalPrice      kernel.Money
	deliveryAddress string
	status          Status

	// assemblerID is the warehouse worker that started assembly (nil before).
	assemblerID *kernel.UUID

	createdAt     time.Time
	items         []OrderItem
	isConstructed bool
}

// NewSubOrder creates a sub-order in Created status. Every item must belong
// to id, and its total price is computed from the items.
//
// Example:
//
//	subID := kernel.NewUUID()
//	item, _ := order.NewOrderItem(subID, productID, 2, price)
//	sub, err := order.NewSubOrder(subID, parentID, sellerID, warehouseID, "Main st 1", now, []order.OrderItem{item})
func NewSubOrder(
	id, parentOrderID, sellerID, warehouseID kernel.UUID,
	deliveryAddress string,
	createdAt time.Time,
	items []OrderItem,
) (*SubOrder, error) {
	sub := &SubOrder{
		status:        Created,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		sub.setIDs(id, parentOrderID, sellerID, warehouseID),
		sub.setDeliveryAddress(deliveryAddress),
		sub.setItems(items),
	); err != nil {
		return nil, err
	}

	return sub, nil
}

// RestoreSubOrder rebuilds a persisted sub-order. The stored total price is
// kept as is.
func RestoreSubOrder(
	id, parentOrderID, sellerID, warehouseID kernel.UUID,
	totalPrice kernel.Money,
	deliveryAddress string,
	status Status,
	assemblerID *kernel.UUID,
	createdAt time.Time,
	items []OrderItem,
) (*SubOrder, error) {
	sub := &SubOrder{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		sub.setIDs(id, parentOrderID, sellerID, warehouseID),
		sub.setDeliveryAddress(deliveryAddress),
		sub.setItems(items),
		totalPrice.Validate(),
		status.ValidateSubOrder(),
	); err != nil {
		return nil, err
	}

	if assemblerID != nil {
		if err := assemblerID.Validate(); err != nil {
			return nil, err
		}
		bound := *assemblerID
		sub.assemblerID = &bound
	}

	sub.totalPrice = totalPrice
	sub.status = status
	return sub, nil
}

func (s *SubOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubOrderIsNotConstructed
	}
	return nil
}

func (s *SubOrder) ID() kernel.UUID {
	return s.id
}

func (s *SubOrder) ParentOrderID() kernel.UUID {
	return s.parentOrderID
}

func (s *SubOrder) SellerID() kernel.UUID {
	return s.sellerID
}

func (s *SubOrder) WarehouseID() kernel.UUID {
	return s.warehouseID
}

func (s *SubOrder) TotalPrice() kernel.Money {
	return s.totalPrice
}

func (s *SubOrder) DeliveryAddress() string {
	return s.deliveryAddress
}

func (s *SubOrder) Status() Status {
	return s.status
}

func (s *SubOrder) CreatedAt() time.Time {
	return s.createdAt
}

// AssemblerID returns the worker bound by StartAssembly, or nil.
func (s *SubOrder) AssemblerID() *kernel.UUID {
	if s.assemblerID == nil {
		return nil
	}
	id := *s.assemblerID
	return &id
}

// Items returns a copy of the sub-order's items.
func (s *SubOrder) Items() []OrderItem {
	items := make([]OrderItem, len(s.items))
	copy(items, s.items)
	return items
}

// IsAssembledBy reports whether workerID is the bound assembler.
func (s *SubOrder) IsAssembledBy(workerID kernel.UUID) bool {
	return s.assemblerID != nil && s.assemblerID.IsEqual(workerID)
}

// StartAssembly moves Created -> Assembling and binds the assembler.
func (s *SubOrder) StartAssembly(assemblerID kernel.UUID) error {
	if err := assemblerID.Validate(); err != nil {
		return err
	}

	next, err := s.status.StartAssembly()
	if err != nil {
		return err
	}

	s.status = next
	s.assemblerID = &assemblerID
	return nil
}

// CompleteAssembly moves Assembling -> Assembled.
func (s *SubOrder) CompleteAssembly() error {
	return s.apply(s.status.CompleteAssembly)
}

// Dispatch moves Assembled -> Dispatched once a courier claims the sub-order.
func (s *SubOrder) Dispatch() error {
	return s.apply(s.status.Dispatch)
}

// Deliver moves Dispatched -> Delivered.
func (s *SubOrder) Deliver() error {
	return s.apply(s.status.Deliver)
}

// RevertDispatch moves Dispatched -> Assembled when the courier gives the
// sub-order up, so another courier may claim it.
func (s *SubOrder) RevertDispatch() error {
	return s.apply(s.status.RevertDispatch)
}

// Cancel moves any non-terminal status to Cancelled.
func (s *SubOrder) Cancel() error {
	return s.apply(s.status.Cancel)
}

// AdvanceTo performs the forward transition that ends in target. Going back
// from Dispatched is only possible through RevertDispatch.
func (s *SubOrder) AdvanceTo(target Status, actorID kernel.UUID) error {
	switch target {
	case Assembling:
		return s.StartAssembly(actorID)
	case Assembled:
		return s.CompleteAssembly()
	case Dispatched:
		return s.Dispatch()
	case Delivered:
		return s.Deliver()
	case Cancelled:
		return s.Cancel()
	default:
		return NewInvalidTransitionError(s.status, target)
	}
}

func (s *SubOrder) apply(transition func() (Status, error)) error {
	next, err := transition()
	if err != nil {
		return err
	}
	s.status = next
	return nil
}

func (s *SubOrder) setIDs(id, parentOrderID, sellerID, warehouseID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		parentOrderID.Validate(),
		sellerID.Validate(),
		warehouseID.Validate(),
	); err != nil {
		return err
	}

	s.id = id
	s.parentOrderID = parentOrderID
	s.sellerID = sellerID
	s.warehouseID = warehouseID
	return nil
}

func (s *SubOrder) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrDeliveryAddressIsRequired
	}
	s.deliveryAddress = address
	return nil
}

func (s *SubOrder) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	total := kernel.ZeroMoney()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.SubOrderID().IsEqual(s.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"item sub-order id",
				fmt.Errorf("item of %s does not belong to sub-order %s", item.SubOrderID(), s.id),
			)
		}
		if _, dup := seen[item.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"items",
				fmt.Errorf("product %s appears twice", item.ProductID()),
			)
		}
		seen[item.ProductID()] = struct{}{}
		total = total.Add(item.Total())
	}

	s.items = make([]OrderItem, len(items))
	copy(s.items, items)
	s.totalPrice = total
	return nil
}
