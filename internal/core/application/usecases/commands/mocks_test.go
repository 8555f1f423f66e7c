package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/audit"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, parent *order.ParentOrder) error {
	return m.Called(ctx, parent).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, parent *order.ParentOrder) error {
	return m.Called(ctx, parent).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ParentOrder), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ParentOrder), args.Error(1)
}

func (m *MockOrderRepository) GetSubOrderForUpdate(ctx context.Context, id kernel.UUID) (*order.SubOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SubOrder), args.Error(1)
}

func (m *MockOrderRepository) UpdateSubOrder(ctx context.Context, sub *order.SubOrder) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockOrderRepository) ListUnsettledIDs(ctx context.Context, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, a *delivery.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, a *delivery.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockDeliveryRepository) GetActiveBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*delivery.Assignment, error) {
	args := m.Called(ctx, subOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) Add(ctx context.Context, warehouseID, workerID kernel.UUID) error {
	return m.Called(ctx, warehouseID, workerID).Error(0)
}

func (m *MockStaffRepository) IsWarehouseWorker(ctx context.Context, warehouseID, workerID kernel.UUID) (bool, error) {
	args := m.Called(ctx, warehouseID, workerID)
	return args.Bool(0), args.Error(1)
}

type MockActionLogRepository struct{ mock.Mock }

func (m *MockActionLogRepository) Add(ctx context.Context, entry *audit.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) StaffRepository() ports.StaffRepository {
	return m.Called().Get(0).(ports.StaffRepository)
}

func (m *MockUoW) ActionLogRepository() ports.ActionLogRepository {
	return m.Called().Get(0).(ports.ActionLogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return m.Called().Get(0).(commands.CheckoutUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Reserve(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	return m.Called(ctx, warehouseID, productID, quantity).Error(0)
}

func (m *MockLedger) Release(ctx context.Context, warehouseID, productID kernel.UUID, quantity int) error {
	return m.Called(ctx, warehouseID, productID, quantity).Error(0)
}

func (m *MockLedger) Available(ctx context.Context, warehouseID, productID kernel.UUID) (int, error) {
	args := m.Called(ctx, warehouseID, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedger) PriorityList(
	ctx context.Context,
	sellerID kernel.UUID,
	productIDs []kernel.UUID,
) ([]inventory.WarehouseStock, error) {
	args := m.Called(ctx, sellerID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.WarehouseStock), args.Error(1)
}

type MockWarehouseCatalog struct{ mock.Mock }

func (m *MockWarehouseCatalog) RegisterWarehouse(ctx context.Context, w inventory.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseCatalog) Warehouse(ctx context.Context, id kernel.UUID) (inventory.Warehouse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(inventory.Warehouse), args.Error(1)
}

func (m *MockWarehouseCatalog) PutStock(ctx context.Context, entry inventory.StockEntry) error {
	return m.Called(ctx, entry).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...ports.OrderEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockStatusCache struct{ mock.Mock }

func (m *MockStatusCache) GetParentStatus(ctx context.Context, id kernel.UUID) (string, bool, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStatusCache) SetParentStatus(ctx context.Context, id kernel.UUID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

// repos bundles the mocks a UoW hands out.
type repos struct {
	uow        *MockUoW
	orders     *MockOrderRepository
	deliveries *MockDeliveryRepository
	staff      *MockStaffRepository
	actionLog  *MockActionLogRepository
	factory    *MockUoWFactory
}

// newRepos wires a MockUoW whose repository accessors may be called any
// number of times, or not at all. Begin and Rollback always succeed.
func newRepos(ctx context.Context) repos {
	r := repos{
		uow:        new(MockUoW),
		orders:     new(MockOrderRepository),
		deliveries: new(MockDeliveryRepository),
		staff:      new(MockStaffRepository),
		actionLog:  new(MockActionLogRepository),
		factory:    new(MockUoWFactory),
	}
	r.uow.On("Begin", ctx).Return(nil)
	r.uow.On("Rollback", ctx).Return(nil)
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("DeliveryRepository").Return(r.deliveries).Maybe()
	r.uow.On("StaffRepository").Return(r.staff).Maybe()
	r.uow.On("ActionLogRepository").Return(r.actionLog).Maybe()
	r.factory.On("Create").Return(r.uow)
	return r
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// newTree builds a parent order with n sub-orders of one item each, all in
// Created status.
func newTree(t *testing.T, n int) (*order.ParentOrder, []*order.SubOrder) {
	t.Helper()

	parentID := kernel.NewUUID()
	subs := make([]*order.SubOrder, 0, n)
	for range n {
		subID := kernel.NewUUID()
		item, err := order.NewOrderItem(subID, kernel.NewUUID(), 2, money(t, "5"))
		require.NoError(t, err)
		sub, err := order.NewSubOrder(subID, parentID, kernel.NewUUID(), kernel.NewUUID(), "Main st 1", time.Now(),
			[]order.OrderItem{item})
		require.NoError(t, err)
		subs = append(subs, sub)
	}

	parent, err := order.NewParentOrder(parentID, kernel.NewUUID(), "Main st 1", time.Now(), subs)
	require.NoError(t, err)
	return parent, subs
}

// moveTo walks sub along the happy path up to target.
func moveTo(t *testing.T, sub *order.SubOrder, target order.Status) {
	t.Helper()

	steps := []func() error{
		func() error { return sub.StartAssembly(kernel.NewUUID()) },
		sub.CompleteAssembly,
		sub.Dispatch,
		sub.Deliver,
	}
	for _, step := range steps {
		if sub.Status() >= target {
			return
		}
		require.NoError(t, step())
	}
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	return m.Called().Get(0).(commands.CatalogUoW)
}
