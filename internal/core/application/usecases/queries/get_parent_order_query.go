package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetParentOrderQueryIsNotConstructed = errors.New(
	"GetParentOrderQuery must be created via NewGetParentOrderQuery constructor",
)

// GetParentOrderQuery reads one order tree: the parent with every sub-order
// and item.
//
// Example:
//
//	query, err := NewGetParentOrderQuery(parentID)
//	if err != nil {
//	    return err
//	}
//	tree, err := handler.Handle(ctx, query)
type GetParentOrderQuery struct {
	parentOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParentOrderQuery(parentOrderID kernel.UUID) (GetParentOrderQuery, error) {
	if err := parentOrderID.Validate(); err != nil {
		return GetParentOrderQuery{}, err
	}
	return GetParentOrderQuery{
		parentOrderID: parentOrderID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetParentOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetParentOrderQueryIsNotConstructed)
}

func (q GetParentOrderQuery) ParentOrderID() kernel.UUID {
	return q.parentOrderID
}

// GetParentOrderQueryResponse is the customer-facing view of an order.
type GetParentOrderQueryResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	TotalPrice      kernel.Money
	DeliveryAddress string
	Status          string
	CreatedAt       time.Time
	SubOrders       []SubOrderView
}
