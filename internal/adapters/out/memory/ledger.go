// Package memory provides an in-process InventoryLedger and WarehouseCatalog.
// It backs tests and single-node setups that do not need stock to survive a
// restart.
package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrWarehouseAlreadyRegistered = errors.New("warehouse is already registered")

// Ledger keeps one lock per (warehouse, product) pair, so reservations on
// different pairs never wait for each other.
type Ledger struct {
	mu         sync.RWMutex
	entries    map[inventory.StockKey]*stockEntry
	warehouses map[kernel.UUID][]warehouse
	catalog    map[kernel.UUID]inventory.Warehouse
}

type stockEntry struct {
	mu       sync.Mutex
	quantity int
}

type warehouse struct {
	id       kernel.UUID
	priority int
}

func NewLedger() *Ledger {
	return &Ledger{
		entries:    make(map[inventory.StockKey]*stockEntry),
		warehouses: make(map[kernel.UUID][]warehouse),
		catalog:    make(map[kernel.UUID]inventory.Warehouse),
	}
}

func (l *Ledger) RegisterWarehouse(_ context.Context, w inventory.Warehouse) error {
	if err := w.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	if _, ok := l.catalog[w.ID()]; ok {
		l.mu.Unlock()
		return errs.NewValueIsInvalidErrorWithCause("warehouse", ErrWarehouseAlreadyRegistered)
	}
	l.catalog[w.ID()] = w
	l.mu.Unlock()

	l.AddWarehouse(w.SellerID(), w.ID(), w.Priority())
	return nil
}

func (l *Ledger) Warehouse(_ context.Context, id kernel.UUID) (inventory.Warehouse, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	w, ok := l.catalog[id]
	if !ok {
		return inventory.Warehouse{}, errs.NewObjectNotFoundError("warehouse", id.String())
	}
	return w, nil
}

func (l *Ledger) PutStock(_ context.Context, entry inventory.StockEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return l.SetStock(entry.WarehouseID(), entry.ProductID(), entry.Quantity())
}

// AddWarehouse registers a warehouse of sellerID, replacing an earlier
// registration of the same warehouse. Lower priority values are allocated
// first; ties are broken by warehouse id.
func (l *Ledger) AddWarehouse(sellerID, warehouseID kernel.UUID, priority int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for seller, list := range l.warehouses {
		l.warehouses[seller] = slices.DeleteFunc(list, func(w warehouse) bool {
			return w.id.IsEqual(warehouseID)
		})
	}

	list := append(l.warehouses[sellerID], warehouse{id: warehouseID, priority: priority})
	slices.SortStableFunc(list, func(a, b warehouse) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		switch {
		case a.id.Less(b.id):
			return -1
		case b.id.Less(a.id):
			return 1
		default:
			return 0
		}
	})
	l.warehouses[sellerID] = list
}

// SetStock overwrites the quantity of a stock entry.
func (l *Ledger) SetStock(warehouseID, productID kernel.UUID, quantity int) error {
	entry, err := inventory.NewStockEntry(warehouseID, productID, quantity)
	if err != nil {
		return err
	}

	e := l.entry(entry.Key(), true)
	e.mu.Lock()
	e.quantity = quantity
	e.mu.Unlock()
	return nil
}

func (l *Ledger) Reserve(_ context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	key := inventory.StockKey{WarehouseID: warehouseID, ProductID: productID}
	e := l.entry(key, false)
	if e == nil {
		return inventory.NewInsufficientStockError(key, quantity, 0)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.quantity < quantity {
		return inventory.NewInsufficientStockError(key, quantity, e.quantity)
	}
	e.quantity -= quantity
	return nil
}

func (l *Ledger) Release(_ context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	e := l.entry(inventory.StockKey{WarehouseID: warehouseID, ProductID: productID}, true)
	e.mu.Lock()
	e.quantity += quantity
	e.mu.Unlock()
	return nil
}

func (l *Ledger) Available(_ context.Context, warehouseID, productID kernel.UUID) (int, error) {
	e := l.entry(inventory.StockKey{WarehouseID: warehouseID, ProductID: productID}, false)
	if e == nil {
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quantity, nil
}

func (l *Ledger) PriorityList(
	ctx context.Context,
	sellerID kernel.UUID,
	productIDs []kernel.UUID,
) ([]inventory.WarehouseStock, error) {
	l.mu.RLock()
	list := slices.Clone(l.warehouses[sellerID])
	l.mu.RUnlock()

	result := make([]inventory.WarehouseStock, 0, len(list))
	for _, w := range list {
		available := make(map[kernel.UUID]int, len(productIDs))
		for _, productID := range productIDs {
			quantity, err := l.Available(ctx, w.id, productID)
			if err != nil {
				return nil, err
			}
			available[productID] = quantity
		}

		snapshot, err := inventory.NewWarehouseStock(w.id, available)
		if err != nil {
			return nil, err
		}
		result = append(result, snapshot)
	}

	return result, nil
}

// entry returns the lock holder of key, creating it when create is set.
func (l *Ledger) entry(key inventory.StockKey, create bool) *stockEntry {
	l.mu.RLock()
	e, ok := l.entries[key]
	l.mu.RUnlock()
	if ok || !create {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok = l.entries[key]; !ok {
		e = &stockEntry{}
		l.entries[key] = e
	}
	return e
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
