// Package actionlogrepo appends audit entries to action_logs.
package actionlogrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionLogDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorRole string    `gorm:"type:varchar(32);not null"`
	Action    string    `gorm:"type:varchar(64);not null;index"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Details   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ActionLogDTO) TableName() string {
	return "action_logs"
}

// GormActionLogRepository implements ports.ActionLogRepository using GORM.
// Entries are append-only.
type GormActionLogRepository struct {
	db *gorm.DB
}

func NewGormActionLogRepository(db *gorm.DB) *GormActionLogRepository {
	return &GormActionLogRepository{db: db}
}

func (r *GormActionLogRepository) Add(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := ActionLogDTO{
		ID:        entry.ID().Bytes(),
		ActorID:   entry.Actor().ID().Bytes(),
		ActorRole: entry.Actor().Role().String(),
		Action:    string(entry.Action()),
		SubjectID: entry.SubjectID().Bytes(),
		Details:   entry.Details(),
		CreatedAt: entry.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
