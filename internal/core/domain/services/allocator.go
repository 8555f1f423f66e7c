package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrAllocationFailed is the sentinel behind AllocationFailedError.
var ErrAllocationFailed = errors.New("allocation failed")

// ErrCartIsEmpty is returned when there is nothing to allocate.
var ErrCartIsEmpty = errs.NewValueIsRequiredError("cart lines")

// AllocationFailedError reports the first product a seller's warehouses could
// not cover. The whole cart fails with it.
type AllocationFailedError struct {
	SellerID  kernel.UUID
	ProductID kernel.UUID
	Shortfall int
}

func (e *AllocationFailedError) Error() string {
	return fmt.Sprintf("%s: seller %s is short of %d units of product %s",
		ErrAllocationFailed, e.SellerID, e.Shortfall, e.ProductID)
}

func (e *AllocationFailedError) Unwrap() error {
	return ErrAllocationFailed
}

// AllocationItem is a number of units of one product taken from one warehouse.
type AllocationItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// AllocationGroup is everything one seller ships from one warehouse. It
// becomes exactly one sub-order.
type AllocationGroup struct {
	SellerID    kernel.UUID
	WarehouseID kernel.UUID
	Items       []AllocationItem
}

// Allocation is the ordered list of groups: sellers in order of first
// appearance in the cart, and each seller's warehouses in priority order.
type Allocation []AllocationGroup

// Quantity returns the units of productID allocated across all groups.
func (a Allocation) Quantity(productID kernel.UUID) int {
	total := 0
	for _, g := range a {
		for _, item := range g.Items {
			if item.ProductID.IsEqual(productID) {
				total += item.Quantity
			}
		}
	}
	return total
}

// Allocator splits a cart over the sellers' warehouses.
//
// Business rules:
//   - a seller with a single warehouse that holds everything gets one group
//   - otherwise warehouses are drained greedily in the order given
//   - any unmet quantity fails the whole cart with AllocationFailedError
//
// Allocator only plans against the snapshots it is given; it reserves
// nothing, so a failed allocation leaves no trace anywhere.
//
// Example usage:
//
//	allocation, err := services.NewAllocator().Allocate(lines, warehousesBySeller)
//	var failed *services.AllocationFailedError
//	if errors.As(err, &failed) {
//	    // failed.SellerID cannot cover failed.Shortfall units of failed.ProductID
//	}
type Allocator struct{}

func NewAllocator() Allocator {
	return Allocator{}
}

// Allocate plans the cart. warehouses maps a seller id to that seller's
// warehouses in priority order. Duplicate cart lines are merged first.
func (a Allocator) Allocate(
	lines []order.CartLine,
	warehouses map[kernel.UUID][]inventory.WarehouseStock,
) (Allocation, error) {
	if len(lines) == 0 {
		return nil, ErrCartIsEmpty
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	var allocation Allocation
	for _, sellerLines := range groupBySeller(order.MergeCartLines(lines)) {
		sellerID := sellerLines[0].SellerID()

		groups, err := a.allocateSeller(sellerID, sellerLines, warehouses[sellerID])
		if err != nil {
			return nil, err
		}
		allocation = append(allocation, groups...)
	}

	return allocation, nil
}

func (a Allocator) allocateSeller(
	sellerID kernel.UUID,
	lines []order.CartLine,
	warehouses []inventory.WarehouseStock,
) ([]AllocationGroup, error) {
	for _, w := range warehouses {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}

	if len(warehouses) == 1 && warehouses[0].Covers(requestedQuantities(lines)) {
		return []AllocationGroup{wholeGroup(sellerID, warehouses[0].WarehouseID(), lines)}, nil
	}

	remaining := requestedQuantities(lines)
	groups := make([]AllocationGroup, 0, len(warehouses))

	for _, w := range warehouses {
		group := AllocationGroup{SellerID: sellerID, WarehouseID: w.WarehouseID()}

		for _, line := range lines {
			take := min(remaining[line.ProductID()], w.Available(line.ProductID()))
			if take <= 0 {
				continue
			}
			group.Items = append(group.Items, AllocationItem{
				ProductID: line.ProductID(),
				Quantity:  take,
				UnitPrice: line.UnitPrice(),
			})
			remaining[line.ProductID()] -= take
		}

		if len(group.Items) > 0 {
			groups = append(groups, group)
		}
	}

	for _, line := range lines {
		if shortfall := remaining[line.ProductID()]; shortfall > 0 {
			return nil, &AllocationFailedError{
				SellerID:  sellerID,
				ProductID: line.ProductID(),
				Shortfall: shortfall,
			}
		}
	}

	return groups, nil
}

func wholeGroup(sellerID, warehouseID kernel.UUID, lines []order.CartLine) AllocationGroup {
	group := AllocationGroup{
		SellerID:    sellerID,
		WarehouseID: warehouseID,
		Items:       make([]AllocationItem, 0, len(lines)),
	}
	for _, line := range lines {
		group.Items = append(group.Items, AllocationItem{
			ProductID: line.ProductID(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice(),
		})
	}
	return group
}

func requestedQuantities(lines []order.CartLine) map[kernel.UUID]int {
	requested := make(map[kernel.UUID]int, len(lines))
	for _, line := range lines {
		requested[line.ProductID()] += line.Quantity()
	}
	return requested
}

// groupBySeller keeps sellers and their lines in order of first appearance.
func groupBySeller(lines []order.CartLine) [][]order.CartLine {
	var grouped [][]order.CartLine
	index := make(map[kernel.UUID]int)

	for _, line := range lines {
		i, ok := index[line.SellerID()]
		if !ok {
			i = len(grouped)
			index[line.SellerID()] = i
			grouped = append(grouped, nil)
		}
		grouped[i] = append(grouped[i], line)
	}

	return grouped
}
