package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetParentOrderStatusQueryIsNotConstructed = errors.New(
	"GetParentOrderStatusQuery must be created via NewGetParentOrderStatusQuery constructor",
)

// GetParentOrderStatusQuery is the cheap status poll used by storefronts.
type GetParentOrderStatusQuery struct {
	parentOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetParentOrderStatusQuery(parentOrderID kernel.UUID) (GetParentOrderStatusQuery, error) {
	if err := parentOrderID.Validate(); err != nil {
		return GetParentOrderStatusQuery{}, err
	}
	return GetParentOrderStatusQuery{
		parentOrderID: parentOrderID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q GetParentOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetParentOrderStatusQueryIsNotConstructed)
}

func (q GetParentOrderStatusQuery) ParentOrderID() kernel.UUID {
	return q.parentOrderID
}

type GetParentOrderStatusQueryResponse struct {
	ParentOrderID kernel.UUID
	Status        string
	// Cached is true when the status came from the status cache.
	Cached bool
}
