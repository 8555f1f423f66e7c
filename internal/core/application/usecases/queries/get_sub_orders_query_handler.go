package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetSubOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetSubOrdersQueryHandler(db *gorm.DB) GetSubOrdersQueryHandler {
	return GetSubOrdersQueryHandler{db: db}
}

// Handle returns an empty slice for unknown parents.
func (h GetSubOrdersQueryHandler) Handle(ctx context.Context, query GetSubOrdersQuery) ([]SubOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return selectSubOrders(ctx, h.db, `
		SELECT`+subOrderColumns+`
		FROM sub_orders s
		WHERE s.parent_order_id = ?
		ORDER BY s.created_at, s.id
	`, query.ParentOrderID().Bytes())
}
