package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler reads eligible couriers without locking
// them. The capacity it reports can be stale by the time an assignment runs.
type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableCouriersQueryHandler creates a handler for available courier queries.
func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle returns active couriers serving the location with spare capacity,
// most available capacity first, then lightest load.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]AvailableCourier, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]AvailableCourier, 0)

	sql := `
		SELECT
			id,
			name,
			serviceable_locations,
			daily_capacity,
			current_assigned_count
		FROM couriers
		WHERE is_active = TRUE
			AND ? = ANY(serviceable_locations)
			AND daily_capacity - current_assigned_count > 0
		ORDER BY daily_capacity - current_assigned_count DESC, current_assigned_count ASC, id ASC`
	args := []any{query.Location().Name()}
	if query.Limit() > 0 {
		sql += " LIMIT ?"
		args = append(args, query.Limit())
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			item      AvailableCourier
			locations pq.StringArray
		)
		if err = rows.Scan(&id, &item.Name, &locations, &item.DailyCapacity, &item.CurrentAssignedCount); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = courierID

		item.ServiceableLocations = make([]kernel.Location, 0, len(locations))
		for _, name := range locations {
			loc, locErr := kernel.NewLocation(name)
			if locErr != nil {
				return nil, locErr
			}
			item.ServiceableLocations = append(item.ServiceableLocations, loc)
		}

		item.AvailableCapacity = item.DailyCapacity - item.CurrentAssignedCount
		couriers = append(couriers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
