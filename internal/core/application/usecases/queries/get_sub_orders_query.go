package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetSubOrdersQueryIsNotConstructed = errors.New(
	"GetSubOrdersQuery must be created via NewGetSubOrdersQuery constructor",
)

// GetSubOrdersQuery lists the sub-orders of one parent order.
type GetSubOrdersQuery struct {
	parentOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSubOrdersQuery(parentOrderID kernel.UUID) (GetSubOrdersQuery, error) {
	if err := parentOrderID.Validate(); err != nil {
		return GetSubOrdersQuery{}, err
	}
	return GetSubOrdersQuery{
		parentOrderID: parentOrderID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSubOrdersQueryIsNotConstructed)
}

func (q GetSubOrdersQuery) ParentOrderID() kernel.UUID {
	return q.parentOrderID
}
