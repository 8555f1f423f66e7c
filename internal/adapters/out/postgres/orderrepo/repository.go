package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the parent order, its sub-orders and their items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ParentOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the parent's derived status. Sub-orders are written through
// UpdateSubOrder.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ParentOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ParentOrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error) {
	return r.get(ctx, id, false)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.ParentOrder, error) {
	return r.get(ctx, id, true)
}

// get reads the parent row first and the children afterwards, so with lock
// set the children are read only once the parent row is held.
func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.ParentOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto ParentOrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_id") }).
		Where("parent_order_id = ?", dto.ID).
		Order("created_at, id").
		Find(&dto.SubOrders).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetSubOrderForUpdate(ctx context.Context, id kernel.UUID) (*order.SubOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubOrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("product_id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sub-order", id.String())
		}
		return nil, err
	}

	return subOrderToDomain(dto)
}

// UpdateSubOrder writes status and assembler, the only mutable sub-order
// fields.
func (r *GormOrderRepository) UpdateSubOrder(ctx context.Context, sub *order.SubOrder) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	dto := subOrderFromDomain(sub)
	result := r.db.WithContext(ctx).
		Model(&SubOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"assembler_id": dto.AssemblerID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sub-order", sub.ID().String())
	}

	r.tracker.TrackAggregate(sub.ID(), sub)
	return nil
}

// ListUnsettledIDs skips delivered and cancelled parents, and partially
// cancelled parents whose remaining sub-orders have all settled.
func (r *GormOrderRepository) ListUnsettledIDs(ctx context.Context, limit int) ([]kernel.UUID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id
		FROM parent_orders p
		WHERE p.status NOT IN (?, ?)
		  AND (p.status <> ? OR EXISTS (
			SELECT 1 FROM sub_orders s
			WHERE s.parent_order_id = p.id AND s.status NOT IN (?, ?)
		  ))
		ORDER BY p.created_at, p.id
		LIMIT ?
	`,
		int(order.Delivered), int(order.Cancelled),
		int(order.PartiallyCancelled),
		int(order.Delivered), int(order.Cancelled),
		limit,
	).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
