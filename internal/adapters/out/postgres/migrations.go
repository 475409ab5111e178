package postgres

import (
	"fmt"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. It is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.LogEntryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	statements := []string{
		fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (order_id) WHERE status = 'CONFIRMED'",
			assignmentrepo.ConfirmedOrderIndex,
			assignmentrepo.AssignmentDTO{}.TableName(),
		),
		fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_couriers_serviceable_locations ON %s USING GIN (serviceable_locations)",
			courierrepo.CourierDTO{}.TableName(),
		),
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
