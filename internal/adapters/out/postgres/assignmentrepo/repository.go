package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db, now: time.Now}
}

// Add inserts a ledger row. A second confirmed row for the same order violates
// the partial unique index and is reported as ports.ErrDuplicateAssignment.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	return nil
}

// Update persists the mutable ledger columns.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"courier_id":    dto.CourierID,
			"status":        dto.Status,
			"retry_count":   dto.RetryCount,
			"error_message": dto.ErrorMessage,
			"updated_at":    dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// HasConfirmed checks the ledger for a confirmed row of orderID.
func (r *GormAssignmentRepository) HasConfirmed(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), assignment.Confirmed.String()).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindFailedByOrder returns the latest failed row of orderID.
func (r *GormAssignmentRepository) FindFailedByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), assignment.Failed.String()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("failed assignment of order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// RecordFailure bumps retry_count and stores message in one statement, so a
// failure is counted even when the caller never loaded the row.
func (r *GormAssignmentRepository) RecordFailure(ctx context.Context, id kernel.UUID, message string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}

	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), assignment.Failed.String()).
		Updates(map[string]any{
			"retry_count":   gorm.Expr("retry_count + 1"),
			"error_message": message,
			"updated_at":    r.now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("failed assignment", id.String())
	}

	return nil
}

// GetFailedBelowRetryCeiling scans failed rows that may still be retried,
// oldest first. Orders that gained a confirmed assignment meanwhile are
// excluded.
func (r *GormAssignmentRepository) GetFailedBelowRetryCeiling(
	ctx context.Context,
	ceiling int,
) ([]ports.RetryCandidate, error) {
	var rows []RetryCandidateDTO
	err := r.db.WithContext(ctx).
		Table(AssignmentDTO{}.TableName()+" AS a").
		Select("a.*, o.delivery_location").
		Joins("JOIN "+orderrepo.OrderDTO{}.TableName()+" AS o ON o.id = a.order_id").
		Where("a.status = ? AND a.retry_count < ?", assignment.Failed.String(), ceiling).
		Where("NOT EXISTS (SELECT 1 FROM "+AssignmentDTO{}.TableName()+
			" c WHERE c.order_id = a.order_id AND c.status = ?)", assignment.Confirmed.String()).
		Order("a.created_at ASC").
		Order("a.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]ports.RetryCandidate, 0, len(rows))
	for _, row := range rows {
		a, convErr := toDomain(row.AssignmentDTO)
		if convErr != nil {
			return nil, convErr
		}

		loc, locErr := kernel.NewLocation(row.DeliveryLocation)
		if locErr != nil {
			return nil, locErr
		}

		candidates = append(candidates, ports.RetryCandidate{Assignment: a, Location: loc})
	}

	return candidates, nil
}
