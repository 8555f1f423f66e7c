package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newTestSubOrder(t *testing.T, parentID kernel.UUID) *order.SubOrder {
	t.Helper()

	subID := kernel.NewUUID()
	first, err := order.NewOrderItem(subID, kernel.NewUUID(), 2, mustMoney(t, "10.50"))
	require.NoError(t, err)
	second, err := order.NewOrderItem(subID, kernel.NewUUID(), 1, mustMoney(t, "4"))
	require.NoError(t, err)

	sub, err := order.NewSubOrder(
		subID, parentID, kernel.NewUUID(), kernel.NewUUID(),
		"Main st 1", time.Now(), []order.OrderItem{first, second},
	)
	require.NoError(t, err)
	return sub
}

func TestNewSubOrder(t *testing.T) {
	t.Run("should compute the total from items", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())

		require.NoError(t, sub.Validate())
		assert.Equal(t, order.Created, sub.Status())
		assert.Nil(t, sub.AssemblerID())
		assert.Len(t, sub.Items(), 2)
		assert.Equal(t, "25.00", sub.TotalPrice().String())
	})

	t.Run("should reject an empty item list", func(t *testing.T) {
		sub, err := order.NewSubOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Main st 1", time.Now(), nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, sub)
	})

	t.Run("should reject items of another sub-order", func(t *testing.T) {
		item, err := order.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), 1, mustMoney(t, "1"))
		require.NoError(t, err)

		_, err = order.NewSubOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Main st 1", time.Now(), []order.OrderItem{item},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "does not belong")
	})

	t.Run("should reject a product listed twice", func(t *testing.T) {
		subID, productID := kernel.NewUUID(), kernel.NewUUID()
		a, _ := order.NewOrderItem(subID, productID, 1, mustMoney(t, "1"))
		b, _ := order.NewOrderItem(subID, productID, 2, mustMoney(t, "1"))

		_, err := order.NewSubOrder(
			subID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Main st 1", time.Now(), []order.OrderItem{a, b},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "appears twice")
	})

	t.Run("should collect every validation error", func(t *testing.T) {
		_, err := order.NewSubOrder(
			kernel.UUID{}, kernel.NewUUID(), kernel.UUID{}, kernel.NewUUID(),
			"  ", time.Now(), nil,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "delivery address")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should reject an unconstructed sub-order", func(t *testing.T) {
		var sub *order.SubOrder
		require.ErrorIs(t, sub.Validate(), order.ErrSubOrderIsNotConstructed)
		require.ErrorIs(t, (&order.SubOrder{}).Validate(), order.ErrSubOrderIsNotConstructed)
	})
}

func TestSubOrder_Lifecycle(t *testing.T) {
	t.Run("should bind the assembler when assembly starts", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())
		worker := kernel.NewUUID()

		require.NoError(t, sub.StartAssembly(worker))

		assert.Equal(t, order.Assembling, sub.Status())
		require.NotNil(t, sub.AssemblerID())
		assert.True(t, sub.AssemblerID().IsEqual(worker))
		assert.True(t, sub.IsAssembledBy(worker))
		assert.False(t, sub.IsAssembledBy(kernel.NewUUID()))
	})

	t.Run("should walk to delivered and stay there", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())

		require.NoError(t, sub.StartAssembly(kernel.NewUUID()))
		require.NoError(t, sub.CompleteAssembly())
		require.NoError(t, sub.Dispatch())
		require.NoError(t, sub.Deliver())

		err := sub.Cancel()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, sub.Status())
	})

	t.Run("should return to assembled when dispatch is reverted", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())
		require.NoError(t, sub.StartAssembly(kernel.NewUUID()))
		require.NoError(t, sub.CompleteAssembly())
		require.NoError(t, sub.Dispatch())

		require.NoError(t, sub.RevertDispatch())

		assert.Equal(t, order.Assembled, sub.Status())
	})

	t.Run("should leave the status untouched on an invalid request", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())

		err := sub.Deliver()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Created, sub.Status())
		assert.Nil(t, sub.AssemblerID())
	})

	t.Run("should advance to the requested status", func(t *testing.T) {
		sub := newTestSubOrder(t, kernel.NewUUID())
		worker := kernel.NewUUID()

		require.NoError(t, sub.AdvanceTo(order.Assembling, worker))
		require.NoError(t, sub.AdvanceTo(order.Assembled, worker))
		require.NoError(t, sub.AdvanceTo(order.Cancelled, worker))
		assert.Equal(t, order.Cancelled, sub.Status())

		err := sub.AdvanceTo(order.PartiallyCancelled, worker)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestRestoreSubOrder(t *testing.T) {
	subID := kernel.NewUUID()
	item, err := order.NewOrderItem(subID, kernel.NewUUID(), 3, mustMoney(t, "2"))
	require.NoError(t, err)
	assembler := kernel.NewUUID()

	t.Run("should keep persisted state", func(t *testing.T) {
		sub, err := order.RestoreSubOrder(
			subID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "6"), "Main st 1", order.Assembling, &assembler, time.Now(),
			[]order.OrderItem{item},
		)

		require.NoError(t, err)
		assert.Equal(t, order.Assembling, sub.Status())
		assert.True(t, sub.IsAssembledBy(assembler))
		assert.Equal(t, "6.00", sub.TotalPrice().String())
	})

	t.Run("should reject a parent-only status", func(t *testing.T) {
		_, err := order.RestoreSubOrder(
			subID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			mustMoney(t, "6"), "Main st 1", order.PartiallyCancelled, nil, time.Now(),
			[]order.OrderItem{item},
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
