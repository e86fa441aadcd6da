// Package http exposes the service over an echo HTTP API: order intake,
// the order action endpoint, smart payment settlement, inbound gateway
// webhooks and read-side queries.
package http

import (
	"context"
	"net/http"
	"time"

	"orderdesk/internal/core/application/actions"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Redeliverer re-sends a failed webhook delivery by log id.
type Redeliverer interface {
	Redeliver(ctx context.Context, logID kernel.UUID) error
}

// WebhookSecrets holds the per-gateway HMAC signing secrets for inbound
// payment confirmation webhooks.
type WebhookSecrets struct {
	Stripe string
	PayPal string
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	dispatcher *actions.Dispatcher

	createOrderHandler    commands.CreateOrderCommandHandler
	settlePaymentHandler  commands.SettlePaymentCommandHandler
	confirmGatewayHandler commands.ConfirmGatewayPaymentCommandHandler

	activeOrdersHandler queries.GetActiveOrdersQueryHandler

	redeliverer Redeliverer
	secrets     WebhookSecrets
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	dispatcher *actions.Dispatcher,
	createOrderHandler commands.CreateOrderCommandHandler,
	settlePaymentHandler commands.SettlePaymentCommandHandler,
	confirmGatewayHandler commands.ConfirmGatewayPaymentCommandHandler,
	activeOrdersHandler queries.GetActiveOrdersQueryHandler,
	redeliverer Redeliverer,
	secrets WebhookSecrets,
) *Server {
	return &Server{
		dispatcher:            dispatcher,
		createOrderHandler:    createOrderHandler,
		settlePaymentHandler:  settlePaymentHandler,
		confirmGatewayHandler: confirmGatewayHandler,
		activeOrdersHandler:   activeOrdersHandler,
		redeliverer:           redeliverer,
		secrets:               secrets,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/actions", s.ExecuteAction)
	api.POST("/orders/:id/payments", s.SettlePayment)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/actions", s.ListActions)

	api.POST("/webhooks/gateway", s.GatewayWebhook)
	api.POST("/webhooks/stripe", s.StripeWebhook)
	api.POST("/webhooks/paypal", s.PayPalWebhook)
	api.POST("/webhooks/deliveries/:id/redeliver", s.RedeliverWebhook)

	e.GET("/health", s.Health)
}

type createOrderRequest struct {
	WebsiteID         string   `json:"website_id"`
	ClientID          string   `json:"client_id"`
	Title             string   `json:"title"`
	Pages             int      `json:"pages"`
	Slides            int      `json:"slides"`
	Deadline          string   `json:"deadline"`
	PreferredWriterID string   `json:"preferred_writer_id,omitempty"`
	WriterLevel       string   `json:"writer_level,omitempty"`
	ExtraServices     []string `json:"extra_services,omitempty"`
	DiscountCode      string   `json:"discount_code,omitempty"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /api/v1/orders. Pricing is computed as part of
// intake, so the created order already carries its totals.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	websiteID, err := kernel.UUIDFromString(req.WebsiteID)
	if err != nil {
		return badRequest(ctx, "invalid website_id")
	}
	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return badRequest(ctx, "invalid client_id")
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return badRequest(ctx, "deadline must be RFC 3339")
	}

	var preferredWriterID *kernel.UUID
	if req.PreferredWriterID != "" {
		id, err := kernel.UUIDFromString(req.PreferredWriterID)
		if err != nil {
			return badRequest(ctx, "invalid preferred_writer_id")
		}
		preferredWriterID = &id
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, websiteID, clientID,
		req.Title, req.Pages, req.Slides,
		deadline, preferredWriterID,
		req.WriterLevel, req.ExtraServices, req.DiscountCode,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{OrderID: orderID.String()})
}

type actionRequest struct {
	Action string         `json:"action"`
	Actor  actorDTO       `json:"actor"`
	Params map[string]any `json:"params,omitempty"`
}

type actorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type actionResponse struct {
	OrderID        string         `json:"order_id"`
	PreviousStatus string         `json:"previous_status"`
	NewStatus      string         `json:"new_status"`
	Details        map[string]any `json:"details,omitempty"`
}

// ExecuteAction handles POST /api/v1/orders/:id/actions. The action name
// is validated against the closed registry before any handler runs.
func (s *Server) ExecuteAction(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req actionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.Actor.ID)
	if err != nil {
		return badRequest(ctx, "invalid actor id")
	}

	result, err := s.dispatcher.DispatchNamed(ctx.Request().Context(), req.Action, actions.Request{
		OrderID: orderID,
		Actor: audit.Actor{
			ID:   actorID,
			Name: req.Actor.Name,
			Role: req.Actor.Role,
		},
		Params: req.Params,
	})
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, actionResponse{
		OrderID:        result.OrderID.String(),
		PreviousStatus: result.PreviousStatus.String(),
		NewStatus:      result.NewStatus.String(),
		Details:        result.Details,
	})
}

// ListActions handles GET /api/v1/actions.
func (s *Server) ListActions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string][]string{
		"actions": s.dispatcher.Registry().Actions(),
	})
}

type settlePaymentRequest struct {
	PayerID      string `json:"payer_id"`
	Gateway      string `json:"payment_method,omitempty"`
	DiscountCode string `json:"discount_code,omitempty"`
}

type splitDTO struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
}

type paymentResponse struct {
	PaymentID string     `json:"payment_id"`
	Status    string     `json:"status"`
	Amount    string     `json:"amount"`
	Splits    []splitDTO `json:"splits"`
}

// SettlePayment handles POST /api/v1/orders/:id/payments: the smart split
// drains the payer's wallet and points before routing to the gateway.
func (s *Server) SettlePayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req settlePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	payerID, err := kernel.UUIDFromString(req.PayerID)
	if err != nil {
		return badRequest(ctx, "invalid payer_id")
	}

	cmd, err := commands.NewSettlePaymentCommand(orderID, payerID, req.Gateway)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.settlePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	splits := make([]splitDTO, 0, len(p.Splits()))
	for _, split := range p.Splits() {
		splits = append(splits, splitDTO{
			Method: split.Method.String(),
			Amount: split.Amount.String(),
		})
	}

	return ctx.JSON(http.StatusOK, paymentResponse{
		PaymentID: p.ID().String(),
		Status:    p.Status().String(),
		Amount:    p.Amount().String(),
		Splits:    splits,
	})
}

type activeOrderDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	WriterID   string `json:"writer_id,omitempty"`
	TotalPrice string `json:"total_price"`
	Deadline   string `json:"deadline"`
	IsLate     bool   `json:"is_late"`
}

// GetActiveOrders handles GET /api/v1/orders/active?website_id=...
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	websiteID, err := kernel.UUIDFromString(ctx.QueryParam("website_id"))
	if err != nil {
		return badRequest(ctx, "invalid website_id")
	}

	query, err := queries.NewGetActiveOrdersQuery(websiteID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.activeOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]activeOrderDTO, 0, len(orders))
	for _, o := range orders {
		dto := activeOrderDTO{
			ID:         o.ID.String(),
			Title:      o.Title,
			Status:     o.Status,
			TotalPrice: o.TotalPrice,
			Deadline:   o.Deadline.Format(time.RFC3339),
			IsLate:     o.IsLate,
		}
		if o.WriterID != nil {
			dto.WriterID = o.WriterID.String()
		}
		response = append(response, dto)
	}

	return ctx.JSON(http.StatusOK, response)
}

// RedeliverWebhook handles POST /api/v1/webhooks/deliveries/:id/redeliver.
func (s *Server) RedeliverWebhook(ctx echo.Context) error {
	logID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid delivery id")
	}

	if err := s.redeliverer.Redeliver(ctx.Request().Context(), logID); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func writeError(ctx echo.Context, err error) error {
	code, message := mapError(err)
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
