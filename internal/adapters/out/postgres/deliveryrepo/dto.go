// Package deliveryrepo persists courier delivery assignments.
package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is one row of delivery_assignments. The partial unique index
// allows any number of cancelled assignments per sub-order but only one
// other.
type AssignmentDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SubOrderID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_delivery_assignments_live,where:status <> 4"`
	CourierID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status            int        `gorm:"type:smallint;not null"`
	EstimatedDelivery time.Time  `gorm:"not null"`
	DeliveredAt       *time.Time `gorm:""`
	CancelReason      string     `gorm:"type:text;not null;default:''"`
	CreatedAt         time.Time  `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

func fromDomain(a *delivery.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                a.ID().Bytes(),
		SubOrderID:        a.SubOrderID().Bytes(),
		CourierID:         a.CourierID().Bytes(),
		Status:            int(a.Status()),
		EstimatedDelivery: a.EstimatedDelivery(),
		DeliveredAt:       a.DeliveredAt(),
		CancelReason:      a.CancelReason(),
		CreatedAt:         a.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	subOrderID, err := kernel.UUIDFromBytes(dto.SubOrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreAssignment(id, subOrderID, courierID, delivery.Status(dto.Status),
		dto.EstimatedDelivery, dto.DeliveredAt, dto.CancelReason, dto.CreatedAt)
}
