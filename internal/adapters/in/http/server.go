// Package http exposes the order lifecycle over a REST surface plus one
// WebSocket endpoint for live tracking. Handlers translate between the
// wire format and application commands; all business rules stay in the
// domain layer.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gatebite/internal/adapters/in/ws"
	"gatebite/internal/core/application/usecases/commands"
	"gatebite/internal/core/application/usecases/queries"
	"gatebite/internal/core/domain/model/agent"
	"gatebite/internal/core/domain/model/kernel"
	"gatebite/internal/core/domain/model/order"
	"gatebite/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	assignAgentHandler       commands.AssignAgentCommandHandler
	markPickedUpHandler      commands.MarkPickedUpCommandHandler
	markInTransitHandler     commands.MarkInTransitCommandHandler
	deliverOrderHandler      commands.DeliverOrderCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getOrderByConfirmationHandler queries.GetOrderByConfirmationQueryHandler
	listAgentOrdersHandler        queries.ListAgentOrdersQueryHandler
	getAgentHandler               queries.GetAgentQueryHandler

	hub    *ws.Hub
	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The hub serves the tracking WebSocket endpoint.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	assignAgentHandler commands.AssignAgentCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	markInTransitHandler commands.MarkInTransitCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderByConfirmationHandler queries.GetOrderByConfirmationQueryHandler,
	listAgentOrdersHandler queries.ListAgentOrdersQueryHandler,
	getAgentHandler queries.GetAgentQueryHandler,
	hub *ws.Hub,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		assignAgentHandler:            assignAgentHandler,
		markPickedUpHandler:           markPickedUpHandler,
		markInTransitHandler:          markInTransitHandler,
		deliverOrderHandler:           deliverOrderHandler,
		getOrderHandler:               getOrderHandler,
		getOrderByConfirmationHandler: getOrderByConfirmationHandler,
		listAgentOrdersHandler:        listAgentOrdersHandler,
		getAgentHandler:               getAgentHandler,
		hub:                           hub,
		logger:                        logger.With("component", "http"),
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/api/orders", s.CreateOrder)
	e.GET("/api/orders/:id", s.GetOrder)
	e.GET("/api/orders/confirmation/:code", s.GetOrderByConfirmation)
	e.PUT("/api/orders/:id/status", s.UpdateOrderStatus)
	e.POST("/api/orders/:id/assign", s.AssignAgent)

	e.GET("/api/agents/:id", s.GetAgent)
	e.GET("/api/agents/:id/orders", s.ListAgentOrders)
	e.PUT("/api/agents/orders/:id/pickup", s.MarkPickedUp)
	e.PUT("/api/agents/orders/:id/transit", s.MarkInTransit)
	e.POST("/api/agents/orders/:id/deliver", s.DeliverOrder)

	e.GET("/ws/order/:id", s.StreamOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application and domain errors onto HTTP status codes.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrDuplicateConfirmation),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, agent.ErrAgentUnavailable):
		status = http.StatusConflict
	case errors.Is(err, order.ErrNotAssignedAgent):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrOtpMismatch),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "error", err)
		status = http.StatusInternalServerError
		return ctx.JSON(status, errorResponse{Code: status, Message: "Internal server error"})
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	ConfirmationCode    string     `json:"confirmation_code"`
	RestaurantID        int64      `json:"restaurant_id"`
	RestaurantName      string     `json:"restaurant_name"`
	UserName            string     `json:"user_name"`
	UserContact         string     `json:"user_contact"`
	BoardingGate        string     `json:"boarding_gate"`
	FlightNumber        string     `json:"flight_number"`
	EstimatedPickupTime *time.Time `json:"estimated_pickup_time"`
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	var pickupTime time.Time
	if req.EstimatedPickupTime != nil {
		pickupTime = req.EstimatedPickupTime.UTC()
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		req.ConfirmationCode,
		req.RestaurantID,
		req.RestaurantName,
		req.UserName,
		req.UserContact,
		req.BoardingGate,
		req.FlightNumber,
		pickupTime,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, snapshot)
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetOrderByConfirmation handles GET /api/orders/confirmation/:code.
func (s *Server) GetOrderByConfirmation(ctx echo.Context) error {
	query, err := queries.NewGetOrderByConfirmationQuery(ctx.Param("code"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.getOrderByConfirmationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// UpdateOrderStatusRequest is the body of PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. Used by the
// restaurant dashboard to advance or cancel an order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// AssignAgentRequest is the body of POST /api/orders/:id/assign.
type AssignAgentRequest struct {
	AgentID int64 `json:"agent_id"`
}

// AssignAgent handles POST /api/orders/:id/assign.
func (s *Server) AssignAgent(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req AssignAgentRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignAgentCommand(orderID, req.AgentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.assignAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// GetAgent handles GET /api/agents/:id.
func (s *Server) GetAgent(ctx echo.Context) error {
	agentID, err := agentIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid agent id")
	}

	query, err := queries.NewGetAgentQuery(agentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getAgentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// ListAgentOrders handles GET /api/agents/:id/orders.
func (s *Server) ListAgentOrders(ctx echo.Context) error {
	agentID, err := agentIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid agent id")
	}

	query, err := queries.NewListAgentOrdersQuery(agentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshots, err := s.listAgentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshots)
}

// AgentActionRequest identifies the agent performing a pickup or transit
// action on an order.
type AgentActionRequest struct {
	AgentID int64 `json:"agent_id"`
}

// MarkPickedUp handles PUT /api/agents/orders/:id/pickup. The response
// snapshot carries the delivery OTP generated on pickup so the caller can
// relay it to the customer.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req AgentActionRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkPickedUpCommand(orderID, req.AgentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.markPickedUpHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// MarkInTransit handles PUT /api/agents/orders/:id/transit.
func (s *Server) MarkInTransit(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req AgentActionRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkInTransitCommand(orderID, req.AgentID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.markInTransitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// DeliverOrderRequest is the body of POST /api/agents/orders/:id/deliver.
type DeliverOrderRequest struct {
	AgentID int64  `json:"agent_id"`
	OTP     string `json:"otp"`
}

// DeliverOrder handles POST /api/agents/orders/:id/deliver. Completes the
// order after OTP verification.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req DeliverOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, req.AgentID, req.OTP)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, snapshot)
}

// StreamOrderStatus handles GET /ws/order/:id. Upgrades to a WebSocket
// and streams status frames until the client disconnects.
func (s *Server) StreamOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	snapshot, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ws.Serve(ctx.Response(), ctx.Request(), s.hub, snapshot, s.logger)
}

func agentIDParam(ctx echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(ctx).Int64("id", &id).BindError(); err != nil {
		return 0, err
	}
	return id, nil
}
