package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerr"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const availableCapacityExpr = "daily_capacity - current_assigned_count"

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a courier by ID regardless of its active flag.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEligibleForLocation returns the unlocked snapshot the greedy walk starts
// from. Capacity shown here is only an estimate until ReserveCapacity
// re-reads it under the row lock.
//
// Example:
//
//	couriers, err := repo.GetEligibleForLocation(ctx, kernel.MustNewLocation("Downtown"), 0)
//	if err != nil {
//		return fmt.Errorf("failed to get couriers: %w", err)
//	}
//	for _, c := range couriers {
//		fmt.Printf("%s has %d slots\n", c.Name(), c.AvailableCapacity())
//	}
func (r *GormCourierRepository) GetEligibleForLocation(
	ctx context.Context,
	location kernel.Location,
	limit int,
) ([]*courier.Courier, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("? = ANY(serviceable_locations)", location.Name()).
		Where(availableCapacityExpr + " > 0").
		Order(availableCapacityExpr + " DESC").
		Order("current_assigned_count ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []CourierDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// ReserveCapacity claims one unit of capacity. It must run inside a
// transaction: the row lock taken here is held until commit or rollback.
func (r *GormCourierRepository) ReserveCapacity(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var dto CourierDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("courier", id.String())
		}
		return pgerr.Translate(err)
	}

	locked, err := toDomain(dto)
	if err != nil {
		return err
	}

	if err := locked.Reserve(); err != nil {
		if errors.Is(err, courier.ErrCourierIsInactive) {
			return errs.NewObjectNotFoundErrorWithCause("courier", id.String(), err)
		}
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND "+availableCapacityExpr+" >= 1", id.Bytes()).
		UpdateColumn("current_assigned_count", gorm.Expr("current_assigned_count + 1"))
	if result.Error != nil {
		return pgerr.Translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return courier.ErrCapacityExhausted
	}

	return nil
}
