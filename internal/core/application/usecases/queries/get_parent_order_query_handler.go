package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetParentOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetParentOrderQueryHandler(db *gorm.DB) GetParentOrderQueryHandler {
	return GetParentOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for unknown ids. Sub-orders are
// ordered by creation.
func (h GetParentOrderQueryHandler) Handle(
	ctx context.Context,
	query GetParentOrderQuery,
) (GetParentOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParentOrderQueryResponse{}, err
	}

	var (
		id, customerID uuid.UUID
		total          decimal.Decimal
		status         int
		resp           GetParentOrderQueryResponse
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			total_price,
			delivery_address,
			status,
			created_at
		FROM parent_orders
		WHERE id = ?
	`, query.ParentOrderID().Bytes()).Row().Scan(
		&id,
		&customerID,
		&total,
		&resp.DeliveryAddress,
		&status,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetParentOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.ParentOrderID().String())
	}
	if err != nil {
		return GetParentOrderQueryResponse{}, err
	}

	if resp.ID, err = toKernelUUID(id); err != nil {
		return GetParentOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = toKernelUUID(customerID); err != nil {
		return GetParentOrderQueryResponse{}, err
	}
	if resp.TotalPrice, err = kernel.NewMoney(total); err != nil {
		return GetParentOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status).String()
	resp.CreatedAt = resp.CreatedAt.UTC()

	resp.SubOrders, err = selectSubOrders(ctx, h.db, `
		SELECT`+subOrderColumns+`
		FROM sub_orders s
		WHERE s.parent_order_id = ?
		ORDER BY s.created_at, s.id
	`, id)
	if err != nil {
		return GetParentOrderQueryResponse{}, err
	}

	return resp, nil
}
