package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCourierDeliveriesQueryIsNotConstructed = errors.New(
	"GetCourierDeliveriesQuery must be created via NewGetCourierDeliveriesQuery constructor",
)

// GetCourierDeliveriesQuery lists a courier's assignments. By default only
// assigned and in-transit ones are returned.
type GetCourierDeliveriesQuery struct {
	courierID       kernel.UUID
	includeFinished bool

	guard guard.ConstructorGuard
}

func NewGetCourierDeliveriesQuery(courierID kernel.UUID, includeFinished bool) (GetCourierDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierDeliveriesQuery{}, err
	}
	return GetCourierDeliveriesQuery{
		courierID:       courierID,
		includeFinished: includeFinished,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDeliveriesQueryIsNotConstructed)
}

func (q GetCourierDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

func (q GetCourierDeliveriesQuery) IncludeFinished() bool {
	return q.includeFinished
}

// GetCourierDeliveriesQueryResponse is one assignment with where to pick it
// up and where to bring it.
type GetCourierDeliveriesQueryResponse struct {
	AssignmentID      kernel.UUID
	SubOrderID        kernel.UUID
	ParentOrderID     kernel.UUID
	WarehouseID       kernel.UUID
	DeliveryAddress   string
	Status            string
	EstimatedDelivery time.Time
	DeliveredAt       *time.Time
	CancelReason      string
	ClaimedAt         time.Time
}
