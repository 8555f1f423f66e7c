package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetAvailableSubOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableSubOrdersQueryHandler(db *gorm.DB) GetAvailableSubOrdersQueryHandler {
	return GetAvailableSubOrdersQueryHandler{db: db}
}

func (h GetAvailableSubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableSubOrdersQuery,
) ([]SubOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return selectSubOrders(ctx, h.db, `
		SELECT`+subOrderColumns+`
		FROM sub_orders s
		WHERE s.status = ?
		  AND NOT EXISTS (
			SELECT 1 FROM delivery_assignments d
			WHERE d.sub_order_id = s.id AND d.status IN (?, ?)
		  )
		ORDER BY s.created_at, s.id
		LIMIT ?
	`,
		int(order.Assembled),
		int(delivery.Assigned), int(delivery.InTransit),
		query.Limit(),
	)
}
