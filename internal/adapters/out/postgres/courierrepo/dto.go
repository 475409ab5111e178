// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations, and the
// row-locked capacity reservation.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// The check constraint keeps the assigned counter inside [0, daily_capacity]
// even for writers that bypass the repository.
type CourierDTO struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                 string         `gorm:"type:varchar(255);not null"`
	ServiceableLocations pq.StringArray `gorm:"type:text[];not null"`
	DailyCapacity        int            `gorm:"not null;check:chk_couriers_daily_capacity,daily_capacity >= 0"`
	CurrentAssignedCount int            `gorm:"not null;check:chk_couriers_assigned_count,current_assigned_count >= 0 AND current_assigned_count <= daily_capacity"`
	IsActive             bool           `gorm:"not null;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	locations := aggregate.ServiceableLocations()
	names := make(pq.StringArray, 0, len(locations))
	for _, loc := range locations {
		names = append(names, loc.Name())
	}

	return CourierDTO{
		ID:                   aggregate.ID().Bytes(),
		Name:                 aggregate.Name(),
		ServiceableLocations: names,
		DailyCapacity:        aggregate.DailyCapacity(),
		CurrentAssignedCount: aggregate.CurrentAssignedCount(),
		IsActive:             aggregate.IsActive(),
	}
}

// toDomain reconstructs the aggregate using RestoreCourier, which re-checks
// the capacity invariant on the stored counters.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	locations := make([]kernel.Location, 0, len(dto.ServiceableLocations))
	for _, name := range dto.ServiceableLocations {
		loc, locErr := kernel.NewLocation(name)
		if locErr != nil {
			return nil, locErr
		}
		locations = append(locations, loc)
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		locations,
		dto.DailyCapacity,
		dto.CurrentAssignedCount,
		dto.IsActive,
	)
}
