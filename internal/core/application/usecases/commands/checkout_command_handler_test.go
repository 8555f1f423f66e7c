package commands_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// checkoutStore is a concurrency-safe CheckoutUoW that records committed
// parent orders.
type checkoutStore struct {
	mu        sync.Mutex
	committed []*order.ParentOrder
	addErr    error
}

func (s *checkoutStore) Create() commands.CheckoutUoW {
	return &checkoutTx{store: s}
}

type checkoutTx struct {
	store   *checkoutStore
	pending []*order.ParentOrder
}

func (tx *checkoutTx) Begin(context.Context) error    { return nil }
func (tx *checkoutTx) Rollback(context.Context) error { tx.pending = nil; return nil }

func (tx *checkoutTx) Commit(context.Context) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	tx.store.committed = append(tx.store.committed, tx.pending...)
	tx.pending = nil
	return nil
}

func (tx *checkoutTx) OrderRepository() ports.OrderRepository {
	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(tx.store.addErr).Run(func(args mock.Arguments) {
		if tx.store.addErr == nil {
			tx.pending = append(tx.pending, args.Get(1).(*order.ParentOrder))
		}
	})
	return repo
}

func (tx *checkoutTx) ActionLogRepository() ports.ActionLogRepository {
	repo := new(MockActionLogRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil)
	return repo
}

func cartLine(t *testing.T, seller, product kernel.UUID, quantity int) order.CartLine {
	t.Helper()
	line, err := order.NewCartLine(product, seller, quantity, money(t, "10"))
	require.NoError(t, err)
	return line
}

func checkout(
	t *testing.T,
	handler commands.CheckoutCommandHandler,
	lines ...order.CartLine,
) (kernel.UUID, error) {
	t.Helper()
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), lines, "Main st 1")
	require.NoError(t, err)
	return handler.Handle(t.Context(), cmd)
}

func available(t *testing.T, ledger *memory.Ledger, w, p kernel.UUID) int {
	t.Helper()
	n, err := ledger.Available(t.Context(), w, p)
	require.NoError(t, err)
	return n
}

func TestCheckoutCommandHandler_SingleWarehouse(t *testing.T) {
	// Given a seller with one warehouse holding 5 units of P
	ledger := memory.NewLedger()
	seller, w, p := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	ledger.AddWarehouse(seller, w, 1)
	require.NoError(t, ledger.SetStock(w, p, 5))

	store := &checkoutStore{}
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.OrderEvent) bool {
		return len(events) == 1 && events[0].Type == ports.EventOrderCheckedOut && events[0].Status == "created"
	})).Return(nil).Once()
	cache := new(MockStatusCache)
	cache.On("SetParentStatus", mock.Anything, mock.Anything, "created").Return(nil).Once()

	handler := commands.NewCheckoutCommandHandler(ledger, store,
		commands.NewChangeNotifier(publisher, cache, nil), nil)

	// When the customer orders all 5
	parentID, err := checkout(t, handler, cartLine(t, seller, p, 5))

	// Then one sub-order takes the whole stock
	require.NoError(t, err)
	require.Len(t, store.committed, 1)
	parent := store.committed[0]
	assert.True(t, parent.ID().IsEqual(parentID))
	assert.Equal(t, order.Created, parent.Status())
	assert.Equal(t, "50.00", parent.TotalPrice().String())

	subs := parent.SubOrders()
	require.Len(t, subs, 1)
	assert.Equal(t, order.Created, subs[0].Status())
	assert.Equal(t, 5, subs[0].Items()[0].Quantity())
	assert.Equal(t, 0, available(t, ledger, w, p))

	publisher.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCheckoutCommandHandler_SplitsAcrossWarehouses(t *testing.T) {
	// Given W1 with 3 and W2 with 4 units of P
	ledger := memory.NewLedger()
	seller, w1, w2, p := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	ledger.AddWarehouse(seller, w1, 1)
	ledger.AddWarehouse(seller, w2, 2)
	require.NoError(t, ledger.SetStock(w1, p, 3))
	require.NoError(t, ledger.SetStock(w2, p, 4))

	store := &checkoutStore{}
	handler := commands.NewCheckoutCommandHandler(ledger, store, commands.ChangeNotifier{}, nil)

	// When the customer orders 6 in two lines
	_, err := checkout(t, handler, cartLine(t, seller, p, 4), cartLine(t, seller, p, 2))

	// Then W1 ships 3 and W2 ships the remaining 3
	require.NoError(t, err)
	subs := store.committed[0].SubOrders()
	require.Len(t, subs, 2)
	assert.True(t, subs[0].WarehouseID().IsEqual(w1))
	assert.Equal(t, 3, subs[0].Items()[0].Quantity())
	assert.True(t, subs[1].WarehouseID().IsEqual(w2))
	assert.Equal(t, 3, subs[1].Items()[0].Quantity())
	assert.Equal(t, "60.00", store.committed[0].TotalPrice().String())

	assert.Equal(t, 0, available(t, ledger, w1, p))
	assert.Equal(t, 1, available(t, ledger, w2, p))
}

func TestCheckoutCommandHandler_AllocationFailed(t *testing.T) {
	// Given warehouses totalling 4 units
	ledger := memory.NewLedger()
	seller, w1, w2, p := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	ledger.AddWarehouse(seller, w1, 1)
	ledger.AddWarehouse(seller, w2, 2)
	require.NoError(t, ledger.SetStock(w1, p, 1))
	require.NoError(t, ledger.SetStock(w2, p, 3))

	factory := new(MockCheckoutUoWFactory)
	handler := commands.NewCheckoutCommandHandler(ledger, factory, commands.ChangeNotifier{}, nil)

	// When the customer orders 6
	_, err := checkout(t, handler, cartLine(t, seller, p, 6))

	// Then checkout fails and nothing was touched
	require.ErrorIs(t, err, services.ErrAllocationFailed)
	var failed *services.AllocationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 2, failed.Shortfall)

	assert.Equal(t, 1, available(t, ledger, w1, p))
	assert.Equal(t, 3, available(t, ledger, w2, p))
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCommandHandler_StockRaceReleasesReservations(t *testing.T) {
	ctx := t.Context()
	seller, w, p1, p2 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	snapshot, err := inventory.NewWarehouseStock(w, map[kernel.UUID]int{p1: 5, p2: 5})
	require.NoError(t, err)

	// Given a snapshot that promises stock, but p2 is gone when reserving
	ledger := new(MockLedger)
	ledger.On("PriorityList", ctx, seller, []kernel.UUID{p1, p2}).Return([]inventory.WarehouseStock{snapshot}, nil)
	ledger.On("Reserve", ctx, w, p1, 2).Return(nil).Once()
	raceErr := inventory.NewInsufficientStockError(inventory.StockKey{WarehouseID: w, ProductID: p2}, 3, 1)
	ledger.On("Reserve", ctx, w, p2, 3).Return(raceErr).Once()
	ledger.On("Release", mock.Anything, w, p1, 2).Return(nil).Once()

	factory := new(MockCheckoutUoWFactory)
	handler := commands.NewCheckoutCommandHandler(ledger, factory, commands.ChangeNotifier{}, nil)
	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(),
		[]order.CartLine{cartLine(t, seller, p1, 2), cartLine(t, seller, p2, 3)}, "Main st 1")
	require.NoError(t, err)

	// When checking out
	_, err = handler.Handle(ctx, cmd)

	// Then the first reservation is released and nothing is persisted
	require.ErrorIs(t, err, commands.ErrStockRace)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	var race *commands.StockRaceError
	require.ErrorAs(t, err, &race)

	ledger.AssertExpectations(t)
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCommandHandler_PersistFailureReleasesReservations(t *testing.T) {
	ledger := memory.NewLedger()
	seller, w, p := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	ledger.AddWarehouse(seller, w, 1)
	require.NoError(t, ledger.SetStock(w, p, 5))

	dbErr := errors.New("connection reset")
	store := &checkoutStore{addErr: dbErr}
	handler := commands.NewCheckoutCommandHandler(ledger, store, commands.ChangeNotifier{}, nil)

	_, err := checkout(t, handler, cartLine(t, seller, p, 4))

	require.ErrorIs(t, err, dbErr)
	assert.Empty(t, store.committed)
	assert.Equal(t, 5, available(t, ledger, w, p))
}

func TestCheckoutCommandHandler_ConcurrentCheckoutsNeverOversell(t *testing.T) {
	// Given two sellers whose warehouses hold 10 units of A and 7 units of B
	ledger := memory.NewLedger()
	sellerA, sellerB := kernel.NewUUID(), kernel.NewUUID()
	wa1, wa2, wb := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	pa, pb := kernel.NewUUID(), kernel.NewUUID()
	ledger.AddWarehouse(sellerA, wa1, 1)
	ledger.AddWarehouse(sellerA, wa2, 2)
	ledger.AddWarehouse(sellerB, wb, 1)
	require.NoError(t, ledger.SetStock(wa1, pa, 4))
	require.NoError(t, ledger.SetStock(wa2, pa, 6))
	require.NoError(t, ledger.SetStock(wb, pb, 7))

	store := &checkoutStore{}
	handler := commands.NewCheckoutCommandHandler(ledger, store, commands.ChangeNotifier{}, nil)

	// When 30 customers each try to buy 1 A and 1 B at the same time
	lines := []order.CartLine{cartLine(t, sellerA, pa, 1), cartLine(t, sellerB, pb, 1)}
	var succeeded atomic.Int64
	var g errgroup.Group
	for range 30 {
		g.Go(func() error {
			cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), lines, "Main st 1")
			if err != nil {
				return err
			}

			_, err = handler.Handle(context.Background(), cmd)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, services.ErrAllocationFailed), errors.Is(err, commands.ErrStockRace):
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Then B, the scarcer product, bounds the number of orders
	assert.Equal(t, int64(7), succeeded.Load())
	require.Len(t, store.committed, 7)

	// and every unit is either in stock or in exactly one committed item
	soldA, soldB := 0, 0
	for _, parent := range store.committed {
		for _, sub := range parent.SubOrders() {
			for _, item := range sub.Items() {
				switch {
				case item.ProductID().IsEqual(pa):
					soldA += item.Quantity()
				case item.ProductID().IsEqual(pb):
					soldB += item.Quantity()
				}
			}
		}
	}
	assert.Equal(t, 7, soldA)
	assert.Equal(t, 7, soldB)
	assert.Equal(t, 10, soldA+available(t, ledger, wa1, pa)+available(t, ledger, wa2, pa))
	assert.Equal(t, 7, soldB+available(t, ledger, wb, pb))
}
