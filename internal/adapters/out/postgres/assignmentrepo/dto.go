// Package assignmentrepo persists the assignment ledger and the audit trail
// attached to it.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConfirmedOrderIndex is the partial unique index that allows at most one
// confirmed assignment per order. It is created by the migration because GORM
// tags cannot express the WHERE clause.
const ConfirmedOrderIndex = "uniq_assignments_confirmed_order"

// AssignmentDTO represents one ledger row.
type AssignmentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CourierID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(16);not null;index:idx_assignments_status_retry,priority:1"`
	RetryCount   int       `gorm:"not null;index:idx_assignments_status_retry,priority:2;check:chk_assignments_retry_count,retry_count >= 0"`
	ErrorMessage *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the database table name for assignment rows.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// RetryCandidateDTO is the row shape of the failed-assignment scan.
type RetryCandidateDTO struct {
	AssignmentDTO
	DeliveryLocation string
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:           a.ID().Bytes(),
		OrderID:      a.OrderID().Bytes(),
		CourierID:    a.CourierID().Bytes(),
		Status:       a.Status().String(),
		RetryCount:   a.RetryCount(),
		ErrorMessage: a.ErrorMessage(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		courierID,
		status,
		dto.RetryCount,
		dto.ErrorMessage,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
