package queries

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const MaxAvailableSubOrders = 500

var ErrGetAvailableSubOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableSubOrdersQuery must be created via NewGetAvailableSubOrdersQuery constructor",
)

// GetAvailableSubOrdersQuery is the courier job board: assembled sub-orders
// nobody has claimed yet, oldest first.
type GetAvailableSubOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetAvailableSubOrdersQuery(limit int) (GetAvailableSubOrdersQuery, error) {
	if limit < 1 || limit > MaxAvailableSubOrders {
		return GetAvailableSubOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAvailableSubOrders)
	}
	return GetAvailableSubOrdersQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableSubOrdersQueryIsNotConstructed)
}

func (q GetAvailableSubOrdersQuery) Limit() int {
	return q.limit
}
