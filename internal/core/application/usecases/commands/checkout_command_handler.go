package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ErrStockRace is the sentinel behind StockRaceError.
var ErrStockRace = errors.New("stock race")

// StockRaceError is returned when stock the allocator planned with was taken
// by a concurrent checkout before it could be reserved. Every reservation of
// the attempt has been released; retrying is safe.
type StockRaceError struct {
	Cause error
}

func (e *StockRaceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrStockRace, e.Cause)
}

func (e *StockRaceError) Unwrap() []error {
	return []error{ErrStockRace, e.Cause}
}

// reservation is one successful Reserve call that must be undone if the
// checkout fails later.
type reservation struct {
	warehouseID kernel.UUID
	productID   kernel.UUID
	quantity    int
}

// CheckoutCommandHandler allocates a cart over the sellers' warehouses,
// reserves the stock and persists the resulting order tree.
//
// The ledger commits each reservation on its own; the order tree is written
// in a separate unit of work. Any failure after the first reservation
// releases everything reserved in the attempt, so a checkout either fully
// succeeds or leaves stock as it found it.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(ledger, uowFactory, notifier, logger)
//	parentID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrAllocationFailed):
//	    // not enough stock across the seller's warehouses
//	case errors.Is(err, ErrStockRace):
//	    // a concurrent checkout won; safe to retry
//	}
type CheckoutCommandHandler struct {
	ledger     ports.InventoryLedger
	uowFactory CheckoutUoWFactory
	notifier   ChangeNotifier
	logger     *slog.Logger
}

func NewCheckoutCommandHandler(
	ledger ports.InventoryLedger,
	uowFactory CheckoutUoWFactory,
	notifier ChangeNotifier,
	logger *slog.Logger,
) CheckoutCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CheckoutCommandHandler{
		ledger:     ledger,
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "checkout"),
	}
}

// Handle returns the id of the created parent order.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	lines := order.MergeCartLines(cmd.Lines())

	warehouses, err := h.priorityLists(ctx, lines)
	if err != nil {
		return kernel.UUID{}, err
	}

	allocation, err := services.NewAllocator().Allocate(lines, warehouses)
	if err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now()
	parent, err := services.NewOrderTreeBuilder().Build(cmd.CustomerID(), cmd.DeliveryAddress(), allocation, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	reserved, err := h.reserve(ctx, parent)
	if err != nil {
		h.release(ctx, parent.ID(), reserved)
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			return kernel.UUID{}, &StockRaceError{Cause: err}
		}
		return kernel.UUID{}, err
	}

	if err = h.persist(ctx, cmd.CustomerID(), parent, now); err != nil {
		h.release(ctx, parent.ID(), reserved)
		return kernel.UUID{}, err
	}

	h.notifier.Notify(ctx, parent, parentEvent(parent, ports.EventOrderCheckedOut, now))

	return parent.ID(), nil
}

// priorityLists reads every seller's warehouses for the products ordered
// from that seller.
func (h CheckoutCommandHandler) priorityLists(
	ctx context.Context,
	lines []order.CartLine,
) (map[kernel.UUID][]inventory.WarehouseStock, error) {
	productsBySeller := make(map[kernel.UUID][]kernel.UUID)
	sellers := make([]kernel.UUID, 0)

	for _, line := range lines {
		if _, ok := productsBySeller[line.SellerID()]; !ok {
			sellers = append(sellers, line.SellerID())
		}
		productsBySeller[line.SellerID()] = append(productsBySeller[line.SellerID()], line.ProductID())
	}

	warehouses := make(map[kernel.UUID][]inventory.WarehouseStock, len(sellers))
	for _, sellerID := range sellers {
		list, err := h.ledger.PriorityList(ctx, sellerID, productsBySeller[sellerID])
		if err != nil {
			return nil, err
		}
		warehouses[sellerID] = list
	}

	return warehouses, nil
}

// reserve takes stock for every item. It stops at the first failure and
// returns what was reserved up to that point.
func (h CheckoutCommandHandler) reserve(ctx context.Context, parent *order.ParentOrder) ([]reservation, error) {
	var reserved []reservation

	for _, sub := range parent.SubOrders() {
		for _, item := range sub.Items() {
			if err := h.ledger.Reserve(ctx, sub.WarehouseID(), item.ProductID(), item.Quantity()); err != nil {
				return reserved, err
			}
			reserved = append(reserved, reservation{
				warehouseID: sub.WarehouseID(),
				productID:   item.ProductID(),
				quantity:    item.Quantity(),
			})
		}
	}

	return reserved, nil
}

// release undoes reservations. It keeps going after a failure, because
// every unit not returned stays unsellable.
func (h CheckoutCommandHandler) release(ctx context.Context, parentID kernel.UUID, reserved []reservation) {
	ctx = context.WithoutCancel(ctx)

	for _, r := range reserved {
		if err := h.ledger.Release(ctx, r.warehouseID, r.productID, r.quantity); err != nil {
			h.logger.ErrorContext(ctx, "failed to release reservation",
				"parent_order_id", parentID.String(),
				"warehouse_id", r.warehouseID.String(),
				"product_id", r.productID.String(),
				"quantity", r.quantity,
				"error", err,
			)
		}
	}
}

func (h CheckoutCommandHandler) persist(
	ctx context.Context,
	customerID kernel.UUID,
	parent *order.ParentOrder,
	now time.Time,
) error {
	customer, err := actor.NewActor(customerID, actor.Customer)
	if err != nil {
		return err
	}
	entry, err := audit.NewEntry(customer, audit.ActionCheckout, parent.ID(),
		fmt.Sprintf("%d sub-orders, total %s", len(parent.SubOrders()), parent.TotalPrice()), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, parent); err != nil {
		return err
	}

	if err = uow.ActionLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
