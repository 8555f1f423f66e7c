package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/delivery"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCourierDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetCourierDeliveriesQueryHandler(db *gorm.DB) GetCourierDeliveriesQueryHandler {
	return GetCourierDeliveriesQueryHandler{db: db}
}

// Handle returns the courier's assignments, most recent claim first.
func (h GetCourierDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetCourierDeliveriesQuery,
) ([]GetCourierDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := []int{int(delivery.Assigned), int(delivery.InTransit)}
	if query.IncludeFinished() {
		statuses = append(statuses, int(delivery.Delivered), int(delivery.Cancelled))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.sub_order_id,
			s.parent_order_id,
			s.warehouse_id,
			s.delivery_address,
			d.status,
			d.estimated_delivery,
			d.delivered_at,
			d.cancel_reason,
			d.created_at
		FROM delivery_assignments d
		JOIN sub_orders s ON s.id = d.sub_order_id
		WHERE d.courier_id = ? AND d.status IN ?
		ORDER BY d.created_at DESC, d.id
	`, query.CourierID().Bytes(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetCourierDeliveriesQueryResponse, 0)
	for rows.Next() {
		var (
			id, subOrderID, parentID, warehouseID uuid.UUID
			status                                int
			deliveredAt                           sql.NullTime
			resp                                  GetCourierDeliveriesQueryResponse
		)

		if err = rows.Scan(
			&id,
			&subOrderID,
			&parentID,
			&warehouseID,
			&resp.DeliveryAddress,
			&status,
			&resp.EstimatedDelivery,
			&deliveredAt,
			&resp.CancelReason,
			&resp.ClaimedAt,
		); err != nil {
			return nil, err
		}

		if resp.AssignmentID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if resp.SubOrderID, err = toKernelUUID(subOrderID); err != nil {
			return nil, err
		}
		if resp.ParentOrderID, err = toKernelUUID(parentID); err != nil {
			return nil, err
		}
		if resp.WarehouseID, err = toKernelUUID(warehouseID); err != nil {
			return nil, err
		}
		if deliveredAt.Valid {
			at := deliveredAt.Time.UTC()
			resp.DeliveredAt = &at
		}
		resp.Status = delivery.Status(status).String()
		resp.EstimatedDelivery = resp.EstimatedDelivery.UTC()
		resp.ClaimedAt = resp.ClaimedAt.UTC()

		deliveries = append(deliveries, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
