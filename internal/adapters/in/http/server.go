package http

import (
	"context"
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type BulkAssigner interface {
	Handle(ctx context.Context, cmd commands.BulkAssignCommand) (commands.BulkAssignResult, error)
}

type FailedRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryFailedCommand) (commands.RetryResult, error)
}

type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type CourierCreator interface {
	Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
}

type UnassignedOrdersReader interface {
	Handle(ctx context.Context, query queries.GetUnassignedOrdersQuery) (queries.GetUnassignedOrdersQueryResponse, error)
}

type AvailableCouriersReader interface {
	Handle(ctx context.Context, query queries.GetAvailableCouriersQuery) ([]queries.AvailableCourier, error)
}

type AssignmentResultsReader interface {
	Handle(ctx context.Context, query queries.GetAssignmentResultsQuery) ([]queries.AssignmentResult, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	BulkAssign        BulkAssigner
	RetryFailed       FailedRetrier
	CreateOrder       OrderCreator
	CreateCourier     CourierCreator
	UnassignedOrders  UnassignedOrdersReader
	AvailableCouriers AvailableCouriersReader
	AssignmentResults AssignmentResultsReader
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers            Handlers
	defaultBatchSize    int
	defaultRetryCeiling int
}

// NewServer creates a server. The defaults apply when a request omits
// batch_size or max_retries; zero values fall back to the use case defaults.
func NewServer(handlers Handlers, defaultBatchSize, defaultRetryCeiling int) *Server {
	if defaultBatchSize <= 0 {
		defaultBatchSize = commands.DefaultBatchSize
	}
	return &Server{
		handlers:            handlers,
		defaultBatchSize:    defaultBatchSize,
		defaultRetryCeiling: max(defaultRetryCeiling, 0),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	registerDocs(e)

	api := e.Group("/api")
	api.POST("/assignments/bulk", s.BulkAssign)
	api.POST("/assignments/retry", s.RetryFailed)
	api.GET("/assignments", s.GetAssignments)
	api.GET("/orders/unassigned", s.GetUnassignedOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/couriers/available", s.GetAvailableCouriers)
	api.POST("/couriers", s.CreateCourier)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// BulkAssign handles POST /api/assignments/bulk.
func (s *Server) BulkAssign(ctx echo.Context) error {
	var req BulkAssignRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var orderIDs []kernel.UUID
	if req.OrderIDs != nil {
		ids, err := kernel.UUIDsFromStrings(*req.OrderIDs)
		if err != nil {
			return badRequest(ctx, "Invalid order_ids: "+err.Error())
		}
		orderIDs = ids
	}

	batchSize := s.defaultBatchSize
	if req.BatchSize != nil {
		batchSize = *req.BatchSize
	}

	cmd, err := commands.NewBulkAssignCommand(orderIDs, batchSize)
	if err != nil {
		return badRequest(ctx, "Invalid bulk assignment request: "+err.Error())
	}

	result, err := s.handlers.BulkAssign.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, BulkAssignResponse{
			Success: false,
			Error:   err.Error(),
			Results: toBulkAssignResults(result),
		})
	}

	return ctx.JSON(http.StatusOK, BulkAssignResponse{
		Success: true,
		Results: toBulkAssignResults(result),
	})
}

// RetryFailed handles POST /api/assignments/retry. The body is optional.
func (s *Server) RetryFailed(ctx echo.Context) error {
	var req RetryRequest
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&req); err != nil {
			return badRequest(ctx, "Invalid request body")
		}
	}

	ceiling := s.defaultRetryCeiling
	if req.MaxRetries != nil {
		if *req.MaxRetries <= 0 {
			return badRequest(ctx, "max_retries must be positive")
		}
		ceiling = *req.MaxRetries
	}

	cmd, err := commands.NewRetryFailedCommand(ceiling)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.RetryFailed.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to retry assignments")
	}

	return ctx.JSON(http.StatusOK, RetryResponse{
		Success: true,
		Results: RetryResults{Retried: result.Retried, StillFailed: result.StillFailed},
	})
}

// GetAssignments handles GET /api/assignments?page&limit&assignment_ids=a,b.
func (s *Server) GetAssignments(ctx echo.Context) error {
	page, err := pageFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var rawIDs []string
	if err = runtime.BindQueryParameter("form", false, false, "assignment_ids", ctx.QueryParams(), &rawIDs); err != nil {
		return badRequest(ctx, err.Error())
	}

	var ids []kernel.UUID
	if rawIDs != nil {
		ids, err = kernel.UUIDsFromStrings(rawIDs)
		if err != nil {
			return badRequest(ctx, "Invalid assignment_ids: "+err.Error())
		}
	}

	query, err := queries.NewGetAssignmentResultsQuery(ids, page)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	results, err := s.handlers.AssignmentResults.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve assignments")
	}

	return ctx.JSON(http.StatusOK, AssignmentsResponse{
		Success: true,
		Data:    toAssignments(results),
		Count:   len(results),
	})
}

// GetUnassignedOrders handles GET /api/orders/unassigned?page&limit&location.
func (s *Server) GetUnassignedOrders(ctx echo.Context) error {
	page, err := pageFromQuery(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var location *kernel.Location
	if raw := ctx.QueryParam("location"); raw != "" {
		loc, locErr := kernel.NewLocation(raw)
		if locErr != nil {
			return badRequest(ctx, "Invalid location: "+locErr.Error())
		}
		location = &loc
	}

	query, err := queries.NewGetUnassignedOrdersQuery(page, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.handlers.UnassignedOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, UnassignedOrdersResponse{
		Success: true,
		Data:    toOrders(resp.Orders),
		Pagination: Pagination{
			Page:       resp.Page,
			Limit:      resp.Limit,
			Total:      resp.Total,
			TotalPages: resp.TotalPages,
		},
	})
}

// GetAvailableCouriers handles GET /api/couriers/available?location&limit.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	raw := ctx.QueryParam("location")
	if raw == "" {
		return badRequest(ctx, "location query parameter is required")
	}
	location, err := kernel.NewLocation(raw)
	if err != nil {
		return badRequest(ctx, "Invalid location: "+err.Error())
	}

	limit, err := intQueryParam(ctx, "limit", 0)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetAvailableCouriersQuery(location, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	couriers, err := s.handlers.AvailableCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve couriers")
	}

	return ctx.JSON(http.StatusOK, AvailableCouriersResponse{
		Success: true,
		Data:    toCouriers(couriers),
		Count:   len(couriers),
	})
}

// CreateOrder handles POST /api/orders. A missing order_id is generated.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		id, err := kernel.UUIDFromString(req.OrderID)
		if err != nil {
			return badRequest(ctx, "Invalid order_id: "+err.Error())
		}
		orderID = id
	}

	location, err := kernel.NewLocation(req.DeliveryLocation)
	if err != nil {
		return badRequest(ctx, "Invalid delivery_location: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, location, req.OrderValue, req.OrderDate)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// CreateCourier handles POST /api/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req NewCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	locations := make([]kernel.Location, 0, len(req.ServiceableLocations))
	for _, name := range req.ServiceableLocations {
		loc, err := kernel.NewLocation(name)
		if err != nil {
			return badRequest(ctx, "Invalid serviceable_locations: "+err.Error())
		}
		locations = append(locations, loc)
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name, locations, req.DailyCapacity)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err = s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create courier")
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.CourierID().String()})
}

func pageFromQuery(ctx echo.Context) (queries.Page, error) {
	number, err := intQueryParam(ctx, "page", 1)
	if err != nil {
		return queries.Page{}, err
	}
	limit, err := intQueryParam(ctx, "limit", queries.DefaultPageLimit)
	if err != nil {
		return queries.Page{}, err
	}
	return queries.NewPage(number, limit)
}

func intQueryParam(ctx echo.Context, name string, fallback int) (int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &v); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if v == nil {
		return fallback, nil
	}
	return *v, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps use case errors onto status codes; message is used for
// errors that are not safe to echo back.
func respondError(ctx echo.Context, err error, message string) error {
	switch {
	case errs.IsValidation(err):
		return badRequest(ctx, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: message,
		})
	}
}
