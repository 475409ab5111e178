package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const assignmentResultsSQL = `
	SELECT
		a.id,
		a.order_id,
		a.courier_id,
		c.name,
		a.status,
		a.retry_count,
		a.error_message,
		o.created_at,
		o.delivery_location,
		o.order_value,
		a.created_at,
		a.updated_at
	FROM assignments a
	JOIN orders o ON o.id = a.order_id
	JOIN couriers c ON c.id = a.courier_id`

// GetAssignmentResultsQueryHandler reads the assignment ledger, including
// failed rows that exhausted their retries.
type GetAssignmentResultsQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignmentResultsQueryHandler creates a handler for ledger listings.
func NewGetAssignmentResultsQueryHandler(db *gorm.DB) GetAssignmentResultsQueryHandler {
	return GetAssignmentResultsQueryHandler{db: db}
}

// Handle returns the matching rows, newest assignment first.
func (h GetAssignmentResultsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentResultsQuery,
) ([]AssignmentResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if ids := query.IDs(); ids != nil {
		raw := make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			raw = append(raw, id.Bytes())
		}
		rows, err = h.db.WithContext(ctx).Raw(
			assignmentResultsSQL+" WHERE a.id IN ? ORDER BY a.created_at DESC, a.id ASC",
			raw,
		).Rows()
	} else {
		page := query.Page()
		rows, err = h.db.WithContext(ctx).Raw(
			assignmentResultsSQL+" ORDER BY a.created_at DESC, a.id ASC LIMIT ? OFFSET ?",
			page.Limit(), page.Offset(),
		).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]AssignmentResult, 0)
	for rows.Next() {
		item, scanErr := scanAssignmentResult(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func scanAssignmentResult(rows *sql.Rows) (AssignmentResult, error) {
	var (
		item                        AssignmentResult
		id, orderID, courierID      uuid.UUID
		location                    string
		errorMessage                sql.NullString
		orderDate, created, updated time.Time
	)

	if err := rows.Scan(
		&id,
		&orderID,
		&courierID,
		&item.CourierName,
		&item.Status,
		&item.RetryCount,
		&errorMessage,
		&orderDate,
		&location,
		&item.OrderValue,
		&created,
		&updated,
	); err != nil {
		return AssignmentResult{}, err
	}

	var err error
	if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return AssignmentResult{}, err
	}
	if item.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return AssignmentResult{}, err
	}
	if item.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
		return AssignmentResult{}, err
	}
	if item.Location, err = kernel.NewLocation(location); err != nil {
		return AssignmentResult{}, err
	}

	if errorMessage.Valid {
		msg := errorMessage.String
		item.ErrorMessage = &msg
	}
	item.OrderDate = orderDate.UTC()
	item.CreatedAt = created.UTC()
	item.UpdatedAt = updated.UTC()

	return item, nil
}
