// Package queries contains the read side of the fulfillment service. Handlers
// run raw SQL against the same tables the repositories write and return flat
// read models; they never load aggregates.
package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView is one line of a sub-order.
type OrderItemView struct {
	ProductID kernel.UUID
	Quantity  int
	Price     kernel.Money
}

// SubOrderView is a sub-order with its items. AssemblerID is nil until a
// warehouse worker starts assembly.
type SubOrderView struct {
	ID              kernel.UUID
	ParentOrderID   kernel.UUID
	SellerID        kernel.UUID
	WarehouseID     kernel.UUID
	Status          string
	TotalPrice      kernel.Money
	DeliveryAddress string
	AssemblerID     *kernel.UUID
	CreatedAt       time.Time
	Items           []OrderItemView
}

const subOrderColumns = `
	s.id,
	s.parent_order_id,
	s.seller_id,
	s.warehouse_id,
	s.status,
	s.total_price,
	s.delivery_address,
	s.assembler_id,
	s.created_at`

// selectSubOrders runs a sub-order query whose select list is
// subOrderColumns and attaches the items of every row.
func selectSubOrders(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]SubOrderView, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]SubOrderView, 0)
	for rows.Next() {
		var (
			id, parentID, sellerID, warehouseID uuid.UUID
			assemblerID                         uuid.NullUUID
			status                              int
			total                               decimal.Decimal
			view                                SubOrderView
		)

		if err = rows.Scan(
			&id,
			&parentID,
			&sellerID,
			&warehouseID,
			&status,
			&total,
			&view.DeliveryAddress,
			&assemblerID,
			&view.CreatedAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if view.ParentOrderID, err = toKernelUUID(parentID); err != nil {
			return nil, err
		}
		if view.SellerID, err = toKernelUUID(sellerID); err != nil {
			return nil, err
		}
		if view.WarehouseID, err = toKernelUUID(warehouseID); err != nil {
			return nil, err
		}
		if assemblerID.Valid {
			assembler, idErr := toKernelUUID(assemblerID.UUID)
			if idErr != nil {
				return nil, idErr
			}
			view.AssemblerID = &assembler
		}
		if view.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		view.Status = order.Status(status).String()
		view.CreatedAt = view.CreatedAt.UTC()
		view.Items = make([]OrderItemView, 0)

		subs = append(subs, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachItems(ctx, db, subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func attachItems(ctx context.Context, db *gorm.DB, subs []SubOrderView) error {
	if len(subs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(subs))
	index := make(map[kernel.UUID]int, len(subs))
	for i, s := range subs {
		ids = append(ids, s.ID.String())
		index[s.ID] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			sub_order_id,
			product_id,
			quantity,
			price
		FROM order_items
		WHERE sub_order_id = ANY(?::uuid[])
		ORDER BY sub_order_id, product_id
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			subOrderID, productID uuid.UUID
			quantity              int
			price                 decimal.Decimal
		)
		if err = rows.Scan(&subOrderID, &productID, &quantity, &price); err != nil {
			return err
		}

		subID, idErr := toKernelUUID(subOrderID)
		if idErr != nil {
			return idErr
		}
		item := OrderItemView{Quantity: quantity}
		if item.ProductID, err = toKernelUUID(productID); err != nil {
			return err
		}
		if item.Price, err = kernel.NewMoney(price); err != nil {
			return err
		}

		i := index[subID]
		subs[i].Items = append(subs[i].Items, item)
	}
	return rows.Err()
}

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
