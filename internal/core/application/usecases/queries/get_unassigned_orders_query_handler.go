package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler reads the unassigned orders straight from
// the orders table.
//
// Example:
//
//	handler := NewGetUnassignedOrdersQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for unassigned order queries.
// Requires a GORM database connection for query execution.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle returns one page in ascending creation time and the total count of
// matching orders.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) (GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}

	page := query.Page()
	resp := GetUnassignedOrdersQueryResponse{
		Orders: make([]UnassignedOrder, 0),
		Page:   page.Number(),
		Limit:  page.Limit(),
	}

	filter := h.db.WithContext(ctx).
		Table("orders").
		Where("status = ?", order.Unassigned.String())
	if loc := query.Location(); loc != nil {
		filter = filter.Where("delivery_location = ?", loc.Name())
	}

	if err := filter.Session(&gorm.Session{}).Count(&resp.Total).Error; err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}
	resp.TotalPages = page.TotalPages(resp.Total)

	rows, err := filter.
		Select("id, delivery_location, order_value, created_at").
		Order("created_at ASC").
		Order("id ASC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Rows()
	if err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        uuid.UUID
			location  string
			value     int64
			createdAt time.Time
		)
		if err = rows.Scan(&id, &location, &value, &createdAt); err != nil {
			return GetUnassignedOrdersQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetUnassignedOrdersQueryResponse{}, idErr
		}

		loc, locErr := kernel.NewLocation(location)
		if locErr != nil {
			return GetUnassignedOrdersQueryResponse{}, locErr
		}

		resp.Orders = append(resp.Orders, UnassignedOrder{
			ID:        orderID,
			Location:  loc,
			Value:     value,
			CreatedAt: createdAt.UTC(),
		})
	}

	if err = rows.Err(); err != nil {
		return GetUnassignedOrdersQueryResponse{}, err
	}

	return resp, nil
}
