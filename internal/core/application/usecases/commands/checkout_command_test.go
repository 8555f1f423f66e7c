package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand(t *testing.T) {
	customer := kernel.NewUUID()
	line, err := order.NewCartLine(kernel.NewUUID(), kernel.NewUUID(), 1, money(t, "1"))
	require.NoError(t, err)

	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewCheckoutCommand(customer, []order.CartLine{line}, "Main st 1")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.CustomerID().IsEqual(customer))
		assert.Len(t, cmd.Lines(), 1)
		assert.Equal(t, "Main st 1", cmd.DeliveryAddress())
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(customer, nil, "Main st 1")
		require.ErrorIs(t, err, commands.ErrCartIsEmpty)
	})

	t.Run("blank address", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(customer, []order.CartLine{line}, "   ")
		require.ErrorIs(t, err, commands.ErrDeliveryAddressIsRequired)
	})

	t.Run("invalid customer", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(kernel.UUID{}, []order.CartLine{line}, "Main st 1")
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CheckoutCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
	})
}
