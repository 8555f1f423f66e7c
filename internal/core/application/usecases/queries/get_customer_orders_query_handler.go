package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]GetCustomerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.total_price,
			p.delivery_address,
			p.status,
			(SELECT count(*) FROM sub_orders s WHERE s.parent_order_id = p.id),
			p.created_at
		FROM parent_orders p
		WHERE p.customer_id = ?
		ORDER BY p.created_at DESC, p.id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetCustomerOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id     uuid.UUID
			total  decimal.Decimal
			status int
			resp   GetCustomerOrdersQueryResponse
		)

		if err = rows.Scan(
			&id,
			&total,
			&resp.DeliveryAddress,
			&status,
			&resp.SubOrderCount,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if resp.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()
		resp.CreatedAt = resp.CreatedAt.UTC()

		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
