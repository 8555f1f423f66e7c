package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetSellerSubOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetSellerSubOrdersQueryHandler(db *gorm.DB) GetSellerSubOrdersQueryHandler {
	return GetSellerSubOrdersQueryHandler{db: db}
}

// Handle returns the seller's sub-orders, oldest first.
func (h GetSellerSubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSellerSubOrdersQuery,
) ([]SubOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Status() == order.Unknown {
		return selectSubOrders(ctx, h.db, `
			SELECT`+subOrderColumns+`
			FROM sub_orders s
			WHERE s.seller_id = ?
			ORDER BY s.created_at, s.id
		`, query.SellerID().Bytes())
	}

	return selectSubOrders(ctx, h.db, `
		SELECT`+subOrderColumns+`
		FROM sub_orders s
		WHERE s.seller_id = ? AND s.status = ?
		ORDER BY s.created_at, s.id
	`, query.SellerID().Bytes(), int(query.Status()))
}
