package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newSub(t *testing.T, seller kernel.UUID) *order.SubOrder {
	t.Helper()
	subID := kernel.NewUUID()
	item, err := order.NewOrderItem(subID, kernel.NewUUID(), 1, price(t, "1"))
	require.NoError(t, err)
	sub, err := order.NewSubOrder(subID, kernel.NewUUID(), seller, kernel.NewUUID(), "Main st 1", time.Now(),
		[]order.OrderItem{item})
	require.NoError(t, err)
	return sub
}

func TestTransitionPolicy_Authorize(t *testing.T) {
	policy := services.NewTransitionPolicy()

	t.Run("warehouse staff may start assembly and cancel", func(t *testing.T) {
		worker := newActor(t, actor.WarehouseWorker)
		sub := newSub(t, kernel.NewUUID())

		require.NoError(t, policy.Authorize(worker, sub, order.Assembling, true))
		require.NoError(t, policy.Authorize(worker, sub, order.Cancelled, true))
	})

	t.Run("workers of other warehouses may not", func(t *testing.T) {
		worker := newActor(t, actor.WarehouseWorker)
		sub := newSub(t, kernel.NewUUID())

		err := policy.Authorize(worker, sub, order.Assembling, false)

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		var denied *errs.NotAuthorizedError
		require.ErrorAs(t, err, &denied)
	})

	t.Run("only the bound assembler completes assembly", func(t *testing.T) {
		assembler, colleague := newActor(t, actor.WarehouseWorker), newActor(t, actor.WarehouseWorker)
		sub := newSub(t, kernel.NewUUID())
		require.NoError(t, sub.StartAssembly(assembler.ID()))

		require.NoError(t, policy.Authorize(assembler, sub, order.Assembled, true))
		require.ErrorIs(t, policy.Authorize(colleague, sub, order.Assembled, true), errs.ErrNotAuthorized)
	})

	t.Run("completing assembly before it started is an invalid transition", func(t *testing.T) {
		worker := newActor(t, actor.WarehouseWorker)
		sub := newSub(t, kernel.NewUUID())

		err := policy.Authorize(worker, sub, order.Assembled, true)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("workers never dispatch or deliver", func(t *testing.T) {
		worker := newActor(t, actor.WarehouseWorker)
		sub := newSub(t, kernel.NewUUID())

		require.ErrorIs(t, policy.Authorize(worker, sub, order.Dispatched, true), errs.ErrNotAuthorized)
		require.ErrorIs(t, policy.Authorize(worker, sub, order.Delivered, true), errs.ErrNotAuthorized)
	})

	t.Run("the owning seller may cancel", func(t *testing.T) {
		seller := newActor(t, actor.Seller)
		sub := newSub(t, seller.ID())

		require.NoError(t, policy.Authorize(seller, sub, order.Cancelled, false))
		require.ErrorIs(t, policy.Authorize(seller, sub, order.Assembling, false), errs.ErrNotAuthorized)
	})

	t.Run("another seller may not cancel", func(t *testing.T) {
		seller := newActor(t, actor.Seller)
		sub := newSub(t, kernel.NewUUID())

		require.ErrorIs(t, policy.Authorize(seller, sub, order.Cancelled, false), errs.ErrNotAuthorized)
	})

	t.Run("couriers and customers never advance sub-orders", func(t *testing.T) {
		sub := newSub(t, kernel.NewUUID())

		for _, role := range []actor.Role{actor.Courier, actor.Customer} {
			a := newActor(t, role)
			for _, target := range []order.Status{order.Assembling, order.Dispatched, order.Delivered, order.Cancelled} {
				err := policy.Authorize(a, sub, target, true)
				assert.ErrorIs(t, err, errs.ErrNotAuthorized, "%s -> %s", role, target)
			}
		}
	})
}
