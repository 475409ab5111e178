package http

import (
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BulkAssignRequest is the body of POST /api/assignments/bulk. A missing
// order_ids field selects the next batch of unassigned orders.
type BulkAssignRequest struct {
	OrderIDs  *[]string `json:"order_ids"`
	BatchSize *int      `json:"batch_size"`
}

// RetryRequest is the optional body of POST /api/assignments/retry.
type RetryRequest struct {
	MaxRetries *int `json:"max_retries"`
}

type NewOrderRequest struct {
	OrderID          string    `json:"order_id"`
	DeliveryLocation string    `json:"delivery_location"`
	OrderValue       int64     `json:"order_value"`
	OrderDate        time.Time `json:"order_date"`
}

type NewCourierRequest struct {
	Name                 string   `json:"name"`
	ServiceableLocations []string `json:"serviceable_locations"`
	DailyCapacity        int      `json:"daily_capacity"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type AssignedOrder struct {
	AssignmentID string `json:"assignment_id"`
	OrderID      string `json:"order_id"`
	CourierID    string `json:"courier_id"`
	CourierName  string `json:"courier_name"`
	Location     string `json:"location"`
}

type AssignmentError struct {
	Type      string  `json:"type"`
	OrderID   *string `json:"order_id,omitempty"`
	CourierID *string `json:"courier_id,omitempty"`
	Error     string  `json:"error"`
}

type BulkAssignResults struct {
	TotalProcessed int               `json:"total_processed"`
	Successful     int               `json:"successful"`
	Failed         int               `json:"failed"`
	Assignments    []AssignedOrder   `json:"assignments"`
	Errors         []AssignmentError `json:"errors"`
}

type BulkAssignResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Results BulkAssignResults `json:"results"`
}

type RetryResults struct {
	Retried     int `json:"retried"`
	StillFailed int `json:"still_failed"`
}

type RetryResponse struct {
	Success bool         `json:"success"`
	Results RetryResults `json:"results"`
}

type Order struct {
	ID               string    `json:"order_id"`
	DeliveryLocation string    `json:"delivery_location"`
	OrderValue       int64     `json:"order_value"`
	OrderDate        time.Time `json:"order_date"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type UnassignedOrdersResponse struct {
	Success    bool       `json:"success"`
	Data       []Order    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Courier struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	ServiceableLocations []string `json:"serviceable_locations"`
	DailyCapacity        int      `json:"daily_capacity"`
	CurrentAssignedCount int      `json:"current_assigned_count"`
	AvailableCapacity    int      `json:"available_capacity"`
}

type AvailableCouriersResponse struct {
	Success bool      `json:"success"`
	Data    []Courier `json:"data"`
	Count   int       `json:"count"`
}

type Assignment struct {
	ID               string    `json:"assignment_id"`
	OrderID          string    `json:"order_id"`
	CourierID        string    `json:"courier_id"`
	CourierName      string    `json:"courier_name"`
	Status           string    `json:"status"`
	RetryCount       int       `json:"retry_count"`
	ErrorMessage     *string   `json:"error_message"`
	OrderDate        time.Time `json:"order_date"`
	DeliveryLocation string    `json:"delivery_location"`
	OrderValue       int64     `json:"order_value"`
	AssignmentDate   time.Time `json:"assignment_date"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AssignmentsResponse struct {
	Success bool         `json:"success"`
	Data    []Assignment `json:"data"`
	Count   int          `json:"count"`
}

func toBulkAssignResults(r commands.BulkAssignResult) BulkAssignResults {
	out := BulkAssignResults{
		TotalProcessed: r.TotalProcessed,
		Successful:     r.Successful,
		Failed:         r.Failed,
		Assignments:    make([]AssignedOrder, 0, len(r.Assignments)),
		Errors:         make([]AssignmentError, 0, len(r.Errors)),
	}

	for _, a := range r.Assignments {
		out.Assignments = append(out.Assignments, AssignedOrder{
			AssignmentID: a.AssignmentID.String(),
			OrderID:      a.OrderID.String(),
			CourierID:    a.CourierID.String(),
			CourierName:  a.CourierName,
			Location:     a.Location.Name(),
		})
	}

	for _, e := range r.Errors {
		item := AssignmentError{Type: string(e.Kind), Error: e.Reason}
		if e.OrderID.Validate() == nil {
			item.OrderID = stringPtr(e.OrderID)
		}
		if e.CourierID != nil {
			item.CourierID = stringPtr(*e.CourierID)
		}
		out.Errors = append(out.Errors, item)
	}

	return out
}

func toOrders(orders []queries.UnassignedOrder) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, Order{
			ID:               o.ID.String(),
			DeliveryLocation: o.Location.Name(),
			OrderValue:       o.Value,
			OrderDate:        o.CreatedAt,
		})
	}
	return out
}

func toCouriers(couriers []queries.AvailableCourier) []Courier {
	out := make([]Courier, 0, len(couriers))
	for _, c := range couriers {
		locations := make([]string, 0, len(c.ServiceableLocations))
		for _, l := range c.ServiceableLocations {
			locations = append(locations, l.Name())
		}
		out = append(out, Courier{
			ID:                   c.ID.String(),
			Name:                 c.Name,
			ServiceableLocations: locations,
			DailyCapacity:        c.DailyCapacity,
			CurrentAssignedCount: c.CurrentAssignedCount,
			AvailableCapacity:    c.AvailableCapacity,
		})
	}
	return out
}

func toAssignments(results []queries.AssignmentResult) []Assignment {
	out := make([]Assignment, 0, len(results))
	for _, r := range results {
		out = append(out, Assignment{
			ID:               r.ID.String(),
			OrderID:          r.OrderID.String(),
			CourierID:        r.CourierID.String(),
			CourierName:      r.CourierName,
			Status:           r.Status,
			RetryCount:       r.RetryCount,
			ErrorMessage:     r.ErrorMessage,
			OrderDate:        r.OrderDate,
			DeliveryLocation: r.Location.Name(),
			OrderValue:       r.OrderValue,
			AssignmentDate:   r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
		})
	}
	return out
}

func stringPtr(id kernel.UUID) *string {
	s := id.String()
	return &s
}
