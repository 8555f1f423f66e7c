package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParentOrderStatusQueryHandler reads the status cache first and falls
// back to parent_orders, filling the cache on the way out. Cache errors are
// treated as misses.
type GetParentOrderStatusQueryHandler struct {
	db    *gorm.DB
	cache ports.StatusCache
}

// NewGetParentOrderStatusQueryHandler accepts a nil cache, in which case
// every call reads the database.
func NewGetParentOrderStatusQueryHandler(db *gorm.DB, cache ports.StatusCache) GetParentOrderStatusQueryHandler {
	return GetParentOrderStatusQueryHandler{db: db, cache: cache}
}

func (h GetParentOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetParentOrderStatusQuery,
) (GetParentOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParentOrderStatusQueryResponse{}, err
	}

	id := query.ParentOrderID()

	if h.cache != nil {
		status, ok, err := h.cache.GetParentStatus(ctx, id)
		if err == nil && ok {
			return GetParentOrderStatusQueryResponse{ParentOrderID: id, Status: status, Cached: true}, nil
		}
	}

	var raw int
	err := h.db.WithContext(ctx).
		Raw(`SELECT status FROM parent_orders WHERE id = ?`, id.Bytes()).
		Row().Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return GetParentOrderStatusQueryResponse{}, errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return GetParentOrderStatusQueryResponse{}, err
	}

	status := order.Status(raw).String()
	if h.cache != nil {
		_ = h.cache.SetParentStatus(ctx, id, status)
	}

	return GetParentOrderStatusQueryResponse{ParentOrderID: id, Status: status}, nil
}
