package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newTree(subOrders int) *order.ParentOrder {
	parentID := kernel.NewUUID()
	now := time.Now().Truncate(time.Microsecond)

	subs := make([]*order.SubOrder, 0, subOrders)
	for i := range subOrders {
		subID := kernel.NewUUID()
		price, err := kernel.MoneyFromString("12.50")
		suite.Require().NoError(err)

		first, err := order.NewOrderItem(subID, kernel.NewUUID(), 2, price)
		suite.Require().NoError(err)
		second, err := order.NewOrderItem(subID, kernel.NewUUID(), 1, price)
		suite.Require().NoError(err)

		sub, err := order.NewSubOrder(subID, parentID, kernel.NewUUID(), kernel.NewUUID(), "Main st 1",
			now.Add(time.Duration(i)*time.Millisecond), []order.OrderItem{first, second})
		suite.Require().NoError(err)
		subs = append(subs, sub)
	}

	parent, err := order.NewParentOrder(parentID, kernel.NewUUID(), "Main st 1", now, subs)
	suite.Require().NoError(err)
	return parent
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsWholeTree() {
	ctx := context.Background()
	parent := suite.newTree(2)

	suite.Require().NoError(suite.repository.Add(ctx, parent))

	loaded, err := suite.repository.Get(ctx, parent.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(parent.ID()))
	suite.Equal(order.Created, loaded.Status())
	suite.Equal("75.00", loaded.TotalPrice().String())
	suite.Require().Len(loaded.SubOrders(), 2)

	for i, sub := range loaded.SubOrders() {
		want := parent.SubOrders()[i]
		suite.True(sub.ID().IsEqual(want.ID()))
		suite.True(sub.WarehouseID().IsEqual(want.WarehouseID()))
		suite.Equal("37.50", sub.TotalPrice().String())
		suite.Len(sub.Items(), 2)
		suite.Nil(sub.AssemblerID())
	}
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", parent.ID(), parent)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateSubOrder_PersistsStatusAndAssembler() {
	ctx := context.Background()
	parent := suite.newTree(1)
	suite.Require().NoError(suite.repository.Add(ctx, parent))

	sub, err := suite.repository.GetSubOrderForUpdate(ctx, parent.SubOrders()[0].ID())
	suite.Require().NoError(err)

	worker := kernel.NewUUID()
	suite.Require().NoError(sub.StartAssembly(worker))
	suite.Require().NoError(suite.repository.UpdateSubOrder(ctx, sub))

	reloaded, err := suite.repository.GetSubOrderForUpdate(ctx, sub.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assembling, reloaded.Status())
	suite.Require().NotNil(reloaded.AssemblerID())
	suite.True(reloaded.IsAssembledBy(worker))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesDerivedStatus() {
	ctx := context.Background()
	parent := suite.newTree(2)
	suite.Require().NoError(suite.repository.Add(ctx, parent))

	for _, sub := range parent.SubOrders() {
		suite.Require().NoError(sub.Cancel())
		suite.Require().NoError(suite.repository.UpdateSubOrder(ctx, sub))
	}

	locked, err := suite.repository.GetForUpdate(ctx, parent.ID())
	suite.Require().NoError(err)
	suite.True(locked.Recompute())
	suite.Require().NoError(suite.repository.Update(ctx, locked))

	loaded, err := suite.repository.Get(ctx, parent.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateSubOrder_Unknown() {
	parent := suite.newTree(1)

	err := suite.repository.UpdateSubOrder(context.Background(), parent.SubOrders()[0])

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksConcurrentLock() {
	ctx := context.Background()
	parent := suite.newTree(1)
	suite.Require().NoError(suite.repository.Add(ctx, parent))

	// Given a transaction holding the parent lock
	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	holder := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	_, err := holder.GetForUpdate(ctx, parent.ID())
	suite.Require().NoError(err)

	// When a second transaction asks for the same lock
	acquired := make(chan error, 1)
	go func() {
		other := suite.database.DB.Begin()
		defer other.Rollback()
		_, lockErr := orderrepo.NewGormOrderRepository(other, suite.tracker).GetForUpdate(ctx, parent.ID())
		acquired <- lockErr
	}()

	// Then it waits until the first one ends
	select {
	case <-acquired:
		suite.Fail("lock acquired while held by another transaction")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(tx.Rollback().Error)
	select {
	case lockErr := <-acquired:
		suite.Require().NoError(lockErr)
	case <-time.After(5 * time.Second):
		suite.Fail("lock never acquired")
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListUnsettledIDs() {
	ctx := context.Background()

	open := suite.newTree(1)
	suite.Require().NoError(suite.repository.Add(ctx, open))

	cancelled := suite.newTree(1)
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))
	suite.settle(cancelled, func(sub *order.SubOrder) error { return sub.Cancel() })

	// partially cancelled with one sub-order still moving
	moving := suite.newTree(2)
	suite.Require().NoError(suite.repository.Add(ctx, moving))
	suite.Require().NoError(moving.SubOrders()[0].Cancel())
	suite.Require().NoError(suite.repository.UpdateSubOrder(ctx, moving.SubOrders()[0]))
	moving.Recompute()
	suite.Require().NoError(suite.repository.Update(ctx, moving))

	// partially cancelled and otherwise delivered
	settled := suite.newTree(2)
	suite.Require().NoError(suite.repository.Add(ctx, settled))
	suite.Require().NoError(settled.SubOrders()[0].Cancel())
	second := settled.SubOrders()[1]
	suite.Require().NoError(second.StartAssembly(kernel.NewUUID()))
	suite.Require().NoError(second.CompleteAssembly())
	suite.Require().NoError(second.Dispatch())
	suite.Require().NoError(second.Deliver())
	for _, sub := range settled.SubOrders() {
		suite.Require().NoError(suite.repository.UpdateSubOrder(ctx, sub))
	}
	settled.Recompute()
	suite.Require().Equal(order.PartiallyCancelled, settled.Status())
	suite.Require().NoError(suite.repository.Update(ctx, settled))

	ids, err := suite.repository.ListUnsettledIDs(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(ids, 2)
	suite.True(ids[0].IsEqual(open.ID()))
	suite.True(ids[1].IsEqual(moving.ID()))

	limited, err := suite.repository.ListUnsettledIDs(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) settle(parent *order.ParentOrder, move func(*order.SubOrder) error) {
	ctx := context.Background()
	for _, sub := range parent.SubOrders() {
		suite.Require().NoError(move(sub))
		suite.Require().NoError(suite.repository.UpdateSubOrder(ctx, sub))
	}
	parent.Recompute()
	suite.Require().NoError(suite.repository.Update(ctx, parent))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
