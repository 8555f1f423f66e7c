package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetSellerSubOrdersQueryIsNotConstructed = errors.New(
	"GetSellerSubOrdersQuery must be created via NewGetSellerSubOrdersQuery constructor",
)

// GetSellerSubOrdersQuery lists the sub-orders a seller has to fulfil,
// optionally narrowed to one status.
type GetSellerSubOrdersQuery struct {
	sellerID kernel.UUID
	status   order.Status

	guard guard.ConstructorGuard
}

// NewGetSellerSubOrdersQuery takes status "" to list every status.
func NewGetSellerSubOrdersQuery(sellerID kernel.UUID, status string) (GetSellerSubOrdersQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerSubOrdersQuery{}, err
	}

	q := GetSellerSubOrdersQuery{
		sellerID: sellerID,
		guard:    guard.NewConstructorGuard(),
	}
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return GetSellerSubOrdersQuery{}, err
		}
		if err = parsed.ValidateSubOrder(); err != nil {
			return GetSellerSubOrdersQuery{}, err
		}
		q.status = parsed
	}

	return q, nil
}

func (q GetSellerSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerSubOrdersQueryIsNotConstructed)
}

func (q GetSellerSubOrdersQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// Status is order.Unknown when no filter was given.
func (q GetSellerSubOrdersQuery) Status() order.Status {
	return q.status
}
