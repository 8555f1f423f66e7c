// Package staffrepo stores which workers belong to which warehouse.
package staffrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WarehouseStaffDTO struct {
	WarehouseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (WarehouseStaffDTO) TableName() string {
	return "warehouse_staff"
}

// GormStaffRepository implements ports.StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) Add(ctx context.Context, warehouseID, workerID kernel.UUID) error {
	if err := errors.Join(warehouseID.Validate(), workerID.Validate()); err != nil {
		return err
	}

	dto := WarehouseStaffDTO{
		WarehouseID: warehouseID.Bytes(),
		WorkerID:    workerID.Bytes(),
		CreatedAt:   time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}

func (r *GormStaffRepository) IsWarehouseWorker(ctx context.Context, warehouseID, workerID kernel.UUID) (bool, error) {
	if err := errors.Join(warehouseID.Validate(), workerID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&WarehouseStaffDTO{}).
		Where("warehouse_id = ? AND worker_id = ?", warehouseID.Bytes(), workerID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
