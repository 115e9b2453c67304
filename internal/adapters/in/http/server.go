package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	SubmitInquiryHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitInquiryCommand) error
	}
	ModifyItemsHandler interface {
		Handle(ctx context.Context, cmd commands.ModifyItemsCommand) error
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) error
	}
	SetPricingHandler interface {
		Handle(ctx context.Context, cmd commands.SetPricingCommand) error
	}
	RecordPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordPaymentCommand) error
	}
	SetPaymentTermsHandler interface {
		Handle(ctx context.Context, cmd commands.SetPaymentTermsCommand) error
	}
	SettleCreditHandler interface {
		Handle(ctx context.Context, cmd commands.SettleCreditCommand) error
	}
	ConfirmDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmDeliveryCommand) error
	}
	SubmitFeedbackHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitFeedbackCommand) error
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error)
	}
	DueCreditOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetDueCreditOrdersQuery) ([]queries.OrderView, error)
	}
	ListCatalogItemsHandler interface {
		Handle(ctx context.Context, query queries.ListCatalogItemsQuery) ([]queries.CatalogItem, error)
	}
)

// Handlers is every use case the HTTP surface exposes.
type Handlers struct {
	SubmitInquiry   SubmitInquiryHandler
	ModifyItems     ModifyItemsHandler
	TransitionOrder TransitionOrderHandler
	SetPricing      SetPricingHandler
	RecordPayment   RecordPaymentHandler
	SetPaymentTerms SetPaymentTermsHandler
	SettleCredit    SettleCreditHandler
	ConfirmDelivery ConfirmDeliveryHandler
	SubmitFeedback  SubmitFeedbackHandler

	GetOrder         GetOrderHandler
	ListOrders       ListOrdersHandler
	DueCreditOrders  DueCreditOrdersHandler
	ListCatalogItems ListCatalogItemsHandler
}

// Server translates HTTP requests into commands and queries. The route group
// decides the actor: client routes act as CLIENT, admin routes as ADMIN.
type Server struct {
	h      Handlers
	clock  order.Clock
	logger *slog.Logger
}

func NewServer(h Handlers, clock order.Clock, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		clock:  clock,
		logger: logger.With("component", "http_server"),
	}
}

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	items, err := s.h.ListCatalogItems.Handle(ctx.Request().Context(), queries.NewListCatalogItemsQuery())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toProducts(items))
}

// SubmitInquiry handles POST /api/v1/inquiries.
func (s *Server) SubmitInquiry(ctx echo.Context) error {
	var req InquiryRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody()
	}

	clientRef, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("clientId", err)
	}
	lines, err := itemLines(req.Items)
	if err != nil {
		return err
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewSubmitInquiryCommand(orderID, clientRef, lines)
	if err != nil {
		return err
	}
	if err = s.h.SubmitInquiry.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusCreated, orderID)
}

// ListClientOrders handles GET /api/v1/clients/:clientId/orders.
func (s *Server) ListClientOrders(ctx echo.Context) error {
	clientRef, err := uuidParam(ctx, "clientId")
	if err != nil {
		return err
	}
	return s.listOrders(ctx, queries.OrderFilter{ClientRef: &clientRef})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// ModifyItems handles PUT /api/v1/orders/:id/items.
func (s *Server) ModifyItems(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req ModifyItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return invalidBody()
	}
	lines, err := itemLines(req.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewModifyItemsCommand(orderID, order.ActorClient, lines)
	if err != nil {
		return err
	}
	if err = s.h.ModifyItems.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	return s.transition(ctx, commands.NewConfirmOrderCommand)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/received.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmDeliveryCommand(orderID, order.ActorClient)
	if err != nil {
		return err
	}
	if err = s.h.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// SubmitFeedback handles POST /api/v1/orders/:id/feedback.
func (s *Server) SubmitFeedback(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req FeedbackRequest
	if err = ctx.Bind(&req); err != nil {
		return invalidBody()
	}

	cmd, err := commands.NewSubmitFeedbackCommand(orderID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	if err = s.h.SubmitFeedback.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// ListOrders handles GET /api/v1/admin/orders?status=.
func (s *Server) ListOrders(ctx echo.Context) error {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	var filter queries.OrderFilter
	if status != nil {
		parsed, err := order.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = &parsed
	}
	return s.listOrders(ctx, filter)
}

// ListInquiries handles GET /api/v1/admin/inquiries.
func (s *Server) ListInquiries(ctx echo.Context) error {
	status := order.NewInquiry
	return s.listOrders(ctx, queries.OrderFilter{Status: &status})
}

// ListDueCreditOrders handles GET /api/v1/admin/orders/due-credit?asOf=.
// asOf defaults to today.
func (s *Server) ListDueCreditOrders(ctx echo.Context) error {
	var asOf *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "asOf", ctx.QueryParams(), &asOf); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("asOf", err)
	}

	day := s.clock.Now().UTC()
	if asOf != nil {
		day = asOf.Time
	}
	query, err := queries.NewGetDueCreditOrdersQuery(day)
	if err != nil {
		return err
	}

	views, err := s.h.DueCreditOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrders(views))
}

// SetPricing handles PUT /api/v1/admin/orders/:id/pricing.
func (s *Server) SetPricing(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req PricingRequest
	if err = ctx.Bind(&req); err != nil {
		return invalidBody()
	}

	lines := make([]commands.PriceLine, 0, len(req.Items))
	for _, item := range req.Items {
		productRef, parseErr := kernel.UUIDFromString(item.ProductID)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("productId", parseErr)
		}
		lines = append(lines, commands.PriceLine{ProductRef: productRef, UnitPrice: item.UnitPrice})
	}

	cmd, err := commands.NewSetPricingCommand(orderID, order.ActorAdmin, lines)
	if err != nil {
		return err
	}
	if err = s.h.SetPricing.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// RecordPayment handles PUT /api/v1/admin/orders/:id/payment.
func (s *Server) RecordPayment(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req PaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return invalidBody()
	}

	cmd, err := commands.NewRecordPaymentCommand(orderID, order.PaymentStatus(req.Status))
	if err != nil {
		return err
	}
	if err = s.h.RecordPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// SetPaymentTerms handles PUT /api/v1/admin/orders/:id/payment-terms.
func (s *Server) SetPaymentTerms(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req PaymentTermsRequest
	if err = ctx.Bind(&req); err != nil {
		return invalidBody()
	}

	var dueDate *time.Time
	if req.CreditDueDate != nil {
		parsed, parseErr := time.Parse(time.DateOnly, *req.CreditDueDate)
		if parseErr != nil {
			return errs.NewValueIsInvalidErrorWithCause("creditDueDate", parseErr)
		}
		dueDate = &parsed
	}

	cmd, err := commands.NewSetPaymentTermsCommand(orderID, order.PaymentType(req.PaymentType), dueDate, order.ActorAdmin)
	if err != nil {
		return err
	}
	if err = s.h.SetPaymentTerms.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// SettleCredit handles POST /api/v1/admin/orders/:id/settle.
func (s *Server) SettleCredit(ctx echo.Context) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewSettleCreditCommand(orderID, order.ActorAdmin)
	if err != nil {
		return err
	}
	if err = s.h.SettleCredit.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

// TransitionOrder handles POST /api/v1/admin/orders/:id/status.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	var req StatusRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody()
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	return s.transition(ctx, func(orderID kernel.UUID) (commands.TransitionOrderCommand, error) {
		return commands.NewTransitionOrderCommand(orderID, target, order.ActorAdmin, req.Note)
	})
}

// DispatchOrder handles POST /api/v1/admin/orders/:id/dispatch.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	return s.transition(ctx, commands.NewDispatchOrderCommand)
}

// DeliverOrder handles POST /api/v1/admin/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	return s.transition(ctx, commands.NewDeliverOrderCommand)
}

// CancelOrder handles POST /api/v1/admin/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transition(ctx, commands.NewCancelOrderCommand)
}

func (s *Server) transition(
	ctx echo.Context,
	newCommand func(orderID kernel.UUID) (commands.TransitionOrderCommand, error),
) error {
	orderID, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	cmd, err := newCommand(orderID)
	if err != nil {
		return err
	}
	if err = s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondWithOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) listOrders(ctx echo.Context, filter queries.OrderFilter) error {
	query, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}
	rows, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toSummaries(rows))
}

// respondWithOrder reads the order back after a command so the client always
// sees the committed state.
func (s *Server) respondWithOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(code, toOrder(view))
}

func uuidParam(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	id, err := kernel.UUIDFrom(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func itemLines(items []ItemLine) ([]commands.ItemLine, error) {
	lines := make([]commands.ItemLine, 0, len(items))
	for _, item := range items {
		productRef, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("productId", err)
		}
		lines = append(lines, commands.ItemLine{ProductRef: productRef, Quantity: item.Quantity})
	}
	return lines, nil
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
}
