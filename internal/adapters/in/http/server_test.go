package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/logging"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Handler values built by the composition root plug straight into Handlers.
var (
	_ httpin.SubmitInquiryHandler   = commands.SubmitInquiryCommandHandler{}
	_ httpin.ModifyItemsHandler     = commands.ModifyItemsCommandHandler{}
	_ httpin.TransitionOrderHandler = commands.TransitionOrderCommandHandler{}
	_ httpin.SetPricingHandler      = commands.SetPricingCommandHandler{}
	_ httpin.RecordPaymentHandler   = commands.RecordPaymentCommandHandler{}
	_ httpin.SetPaymentTermsHandler = commands.SetPaymentTermsCommandHandler{}
	_ httpin.SettleCreditHandler    = commands.SettleCreditCommandHandler{}
	_ httpin.ConfirmDeliveryHandler = commands.ConfirmDeliveryCommandHandler{}
	_ httpin.SubmitFeedbackHandler  = commands.SubmitFeedbackCommandHandler{}
)

type MockCommandHandler[C any] struct {
	mock.Mock
}

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockQueryHandler[Q, R any] struct {
	mock.Mock
}

func (m *MockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(R)
	return result, args.Error(1)
}

type fixture struct {
	e        *echo.Echo
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	submitInquiry   *MockCommandHandler[commands.SubmitInquiryCommand]
	modifyItems     *MockCommandHandler[commands.ModifyItemsCommand]
	transition      *MockCommandHandler[commands.TransitionOrderCommand]
	setPricing      *MockCommandHandler[commands.SetPricingCommand]
	recordPayment   *MockCommandHandler[commands.RecordPaymentCommand]
	setPaymentTerms *MockCommandHandler[commands.SetPaymentTermsCommand]
	settleCredit    *MockCommandHandler[commands.SettleCreditCommand]
	confirmDelivery *MockCommandHandler[commands.ConfirmDeliveryCommand]
	submitFeedback  *MockCommandHandler[commands.SubmitFeedbackCommand]

	getOrder   *MockQueryHandler[queries.GetOrderQuery, queries.OrderView]
	listOrders *MockQueryHandler[queries.ListOrdersQuery, []queries.OrderSummary]
	dueCredit  *MockQueryHandler[queries.GetDueCreditOrdersQuery, []queries.OrderView]
	catalog    *MockQueryHandler[queries.ListCatalogItemsQuery, []queries.CatalogItem]
}

var now = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T, store *httpin.VisitorLimiterStore) *fixture {
	t.Helper()
	f := &fixture{
		registry:        prometheus.NewRegistry(),
		submitInquiry:   &MockCommandHandler[commands.SubmitInquiryCommand]{},
		modifyItems:     &MockCommandHandler[commands.ModifyItemsCommand]{},
		transition:      &MockCommandHandler[commands.TransitionOrderCommand]{},
		setPricing:      &MockCommandHandler[commands.SetPricingCommand]{},
		recordPayment:   &MockCommandHandler[commands.RecordPaymentCommand]{},
		setPaymentTerms: &MockCommandHandler[commands.SetPaymentTermsCommand]{},
		settleCredit:    &MockCommandHandler[commands.SettleCreditCommand]{},
		confirmDelivery: &MockCommandHandler[commands.ConfirmDeliveryCommand]{},
		submitFeedback:  &MockCommandHandler[commands.SubmitFeedbackCommand]{},
		getOrder:        &MockQueryHandler[queries.GetOrderQuery, queries.OrderView]{},
		listOrders:      &MockQueryHandler[queries.ListOrdersQuery, []queries.OrderSummary]{},
		dueCredit:       &MockQueryHandler[queries.GetDueCreditOrdersQuery, []queries.OrderView]{},
		catalog:         &MockQueryHandler[queries.ListCatalogItemsQuery, []queries.CatalogItem]{},
	}
	f.metrics = metrics.New(f.registry)

	server := httpin.NewServer(httpin.Handlers{
		SubmitInquiry:    f.submitInquiry,
		ModifyItems:      f.modifyItems,
		TransitionOrder:  f.transition,
		SetPricing:       f.setPricing,
		RecordPayment:    f.recordPayment,
		SetPaymentTerms:  f.setPaymentTerms,
		SettleCredit:     f.settleCredit,
		ConfirmDelivery:  f.confirmDelivery,
		SubmitFeedback:   f.submitFeedback,
		GetOrder:         f.getOrder,
		ListOrders:       f.listOrders,
		DueCreditOrders:  f.dueCredit,
		ListCatalogItems: f.catalog,
	}, clock.Fixed{At: now}, logging.NewNop())

	if store == nil {
		store = httpin.NewVisitorLimiterStore(1000, 1000)
	}
	e, err := httpin.NewRouter(server, f.metrics, httpin.RouterConfig{
		RateLimitRPS: 1000,
		Gatherer:     f.registry,
		LimiterStore: store,
	}, logging.NewNop())
	require.NoError(t, err)
	f.e = e
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) expectOrder(id kernel.UUID, status order.Status) {
	f.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().IsEqual(id)
	})).Return(orderView(id, status), nil).Once()
}

func orderView(id kernel.UUID, status order.Status) queries.OrderView {
	return queries.OrderView{
		ID:              id,
		ClientRef:       kernel.NewUUID(),
		Status:          status,
		PaymentType:     order.PaymentTypeNotSet,
		PaymentStatus:   order.PaymentPending,
		DeliveryStatus:  order.DeliveryPending,
		TotalOrderValue: decimal.RequireFromString("6500.50"),
		Items: []queries.ItemView{{
			ProductRef: kernel.NewUUID(),
			Quantity:   100,
			UnitPrice:  decimal.RequireFromString("65.005"),
			LineTotal:  decimal.RequireFromString("6500.50"),
		}},
		AuditLogs: []queries.AuditView{{
			Action: order.ActionCreated, Actor: order.ActorClient, Detail: "Inquiry submitted", Timestamp: now,
		}},
		CreatedAt: now,
		Version:   1,
	}
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) httpin.Order {
	t.Helper()
	var resp httpin.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpin.Error {
	t.Helper()
	var resp httpin.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSubmitInquiry(t *testing.T) {
	t.Run("should create the order and return it", func(t *testing.T) {
		f := newFixture(t, nil)
		clientID := kernel.NewUUID()
		productID := kernel.NewUUID()

		var created kernel.UUID
		f.submitInquiry.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitInquiryCommand) bool {
			return cmd.ClientRef().IsEqual(clientID) && len(cmd.Items()) == 1 && cmd.Items()[0].Quantity() == 100
		})).Run(func(args mock.Arguments) {
			created = args.Get(1).(commands.SubmitInquiryCommand).OrderID()
		}).Return(nil).Once()
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(orderView(kernel.NewUUID(), order.NewInquiry), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/inquiries",
			`{"clientId":"`+clientID.String()+`","items":[{"productId":"`+productID.String()+`","quantity":100}]}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decodeOrder(t, rec)
		assert.Equal(t, "NEW_INQUIRY", resp.Status)
		assert.Equal(t, "6500.5", resp.TotalOrderValue.String())
		require.Len(t, resp.AuditLogs, 1)
		assert.Equal(t, "CREATED", resp.AuditLogs[0].Action)
		getQuery := f.getOrder.Calls[0].Arguments.Get(1).(queries.GetOrderQuery)
		assert.True(t, getQuery.OrderID().IsEqual(created))
		f.submitInquiry.AssertExpectations(t)
	})

	t.Run("should reject a body the document does not allow", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodPost, "/api/v1/inquiries",
			`{"clientId":"`+kernel.NewUUID().String()+`","items":[{"productId":"`+kernel.NewUUID().String()+`","quantity":0}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
		f.submitInquiry.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should report unknown references as not found", func(t *testing.T) {
		f := newFixture(t, nil)
		f.submitInquiry.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectNotFoundError("clientRef", "c-1")).Once()

		rec := f.do(http.MethodPost, "/api/v1/inquiries",
			`{"clientId":"`+kernel.NewUUID().String()+`","items":[{"productId":"`+kernel.NewUUID().String()+`","quantity":1}]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid transition", errs.NewInvalidTransitionError(order.Delivered, order.InTransit), http.StatusConflict},
		{"concurrent modification", errs.NewConcurrentModificationError("order", "o-1"), http.StatusConflict},
		{"precondition failed", errs.NewPreconditionFailedError("payment must be PAID"), http.StatusUnprocessableEntity},
		{"validation", errs.NewValueIsRequiredError("note"), http.StatusBadRequest},
		{"not found", errs.NewObjectNotFoundError("order", "o-1"), http.StatusNotFound},
		{"infrastructure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.transition.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/dispatch", "")

			assert.Equal(t, tt.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection reset")
			}
		})
	}
}

func TestTransitionRoutes(t *testing.T) {
	tests := []struct {
		path   string
		body   string
		target order.Status
		actor  order.Actor
	}{
		{"/api/v1/orders/%s/confirm", "", order.OrderConfirmed, order.ActorClient},
		{"/api/v1/admin/orders/%s/dispatch", "", order.InTransit, order.ActorAdmin},
		{"/api/v1/admin/orders/%s/deliver", "", order.Delivered, order.ActorAdmin},
		{"/api/v1/admin/orders/%s/cancel", "", order.Cancelled, order.ActorAdmin},
		{"/api/v1/admin/orders/%s/status", `{"status":"CLOSED","note":"done"}`, order.Closed, order.ActorAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			f := newFixture(t, nil)
			id := kernel.NewUUID()
			f.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
				return cmd.OrderID().IsEqual(id) && cmd.Target() == tt.target && cmd.Actor() == tt.actor
			})).Return(nil).Once()
			f.expectOrder(id, tt.target)

			rec := f.do(http.MethodPost, strings.Replace(tt.path, "%s", id.String(), 1), tt.body)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.target.String(), decodeOrder(t, rec).Status)
			f.transition.AssertExpectations(t)
		})
	}

	t.Run("should reject an unknown status name", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodPost, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/status", `{"status":"SHIPPED"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.transition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("should reject a malformed id", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.getOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map a missing order to 404", func(t *testing.T) {
		f := newFixture(t, nil)
		f.getOrder.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderView{}, errs.NewObjectNotFoundError("order", "o-1")).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminCommands(t *testing.T) {
	t.Run("should pass quoted prices", func(t *testing.T) {
		f := newFixture(t, nil)
		id := kernel.NewUUID()
		productID := kernel.NewUUID()
		f.setPricing.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetPricingCommand) bool {
			updates := cmd.Updates()
			return cmd.Actor() == order.ActorAdmin && len(updates) == 1 &&
				updates[0].ProductRef().IsEqual(productID) &&
				updates[0].UnitPrice().Equal(decimal.RequireFromString("65.5"))
		})).Return(nil).Once()
		f.expectOrder(id, order.WaitingClientApproval)

		rec := f.do(http.MethodPut, "/api/v1/admin/orders/"+id.String()+"/pricing",
			`{"items":[{"productId":"`+productID.String()+`","unitPrice":65.5}]}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f.setPricing.AssertExpectations(t)
	})

	t.Run("should reject a price finer than a cent", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodPut, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/pricing",
			`{"items":[{"productId":"`+kernel.NewUUID().String()+`","unitPrice":0.004}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "decimal places")
		f.setPricing.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should parse the credit due date", func(t *testing.T) {
		f := newFixture(t, nil)
		id := kernel.NewUUID()
		f.setPaymentTerms.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetPaymentTermsCommand) bool {
			due := cmd.CreditDueDate()
			return cmd.PaymentType() == order.PaymentTypeCredit && due != nil &&
				due.Equal(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
		})).Return(nil).Once()
		f.expectOrder(id, order.OrderConfirmed)

		rec := f.do(http.MethodPut, "/api/v1/admin/orders/"+id.String()+"/payment-terms",
			`{"paymentType":"CREDIT","creditDueDate":"2026-06-30"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f.setPaymentTerms.AssertExpectations(t)
	})

	t.Run("should reject an unknown payment status", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodPut, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/payment", `{"status":"REFUNDED"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.recordPayment.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should map a settle precondition to 422", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settleCredit.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewPreconditionFailedError("only credit orders can be settled")).Once()

		rec := f.do(http.MethodPost, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/settle", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "only credit orders")
	})
}

func TestClientCommands(t *testing.T) {
	t.Run("should submit feedback", func(t *testing.T) {
		f := newFixture(t, nil)
		id := kernel.NewUUID()
		f.submitFeedback.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitFeedbackCommand) bool {
			return cmd.OrderID().IsEqual(id)
		})).Return(nil).Once()
		f.expectOrder(id, order.Delivered)

		rec := f.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/feedback", `{"rating":5,"comment":"on time"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f.submitFeedback.AssertExpectations(t)
	})

	t.Run("should reject a rating out of range", func(t *testing.T) {
		f := newFixture(t, nil)

		rec := f.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/feedback", `{"rating":9}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should confirm delivery as the client", func(t *testing.T) {
		f := newFixture(t, nil)
		id := kernel.NewUUID()
		f.confirmDelivery.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
		f.expectOrder(id, order.Delivered)

		rec := f.do(http.MethodPost, "/api/v1/orders/"+id.String()+"/received", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should modify items", func(t *testing.T) {
		f := newFixture(t, nil)
		id := kernel.NewUUID()
		f.modifyItems.On("Handle", mock.Anything, mock.Anything).Return(nil).Once()
		f.expectOrder(id, order.PendingPricing)

		rec := f.do(http.MethodPut, "/api/v1/orders/"+id.String()+"/items",
			`{"items":[{"productId":"`+kernel.NewUUID().String()+`","quantity":3}]}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "PENDING_PRICING", decodeOrder(t, rec).Status)
	})
}

func TestListRoutes(t *testing.T) {
	t.Run("should filter admin orders by status", func(t *testing.T) {
		f := newFixture(t, nil)
		f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			s := q.Filter().Status
			return s != nil && *s == order.Delivered && q.Filter().ClientRef == nil
		})).Return([]queries.OrderSummary{{ID: kernel.NewUUID(), ClientRef: kernel.NewUUID(), Status: order.Delivered, ItemCount: 2}}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/orders?status=DELIVERED", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var rows []httpin.OrderSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, 2, rows[0].ItemCount)
	})

	t.Run("should list new inquiries", func(t *testing.T) {
		f := newFixture(t, nil)
		f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			s := q.Filter().Status
			return s != nil && *s == order.NewInquiry
		})).Return([]queries.OrderSummary{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/inquiries", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("should list a client's history", func(t *testing.T) {
		f := newFixture(t, nil)
		clientID := kernel.NewUUID()
		f.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			ref := q.Filter().ClientRef
			return ref != nil && ref.IsEqual(clientID)
		})).Return([]queries.OrderSummary{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/clients/"+clientID.String()+"/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should scan due credit for the requested day", func(t *testing.T) {
		f := newFixture(t, nil)
		f.dueCredit.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDueCreditOrdersQuery) bool {
			return q.AsOf().Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
		})).Return([]queries.OrderView{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/orders/due-credit?asOf=2026-04-01", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		f.dueCredit.AssertExpectations(t)
	})

	t.Run("should default the due credit day to today", func(t *testing.T) {
		f := newFixture(t, nil)
		f.dueCredit.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDueCreditOrdersQuery) bool {
			return q.AsOf().Equal(now)
		})).Return([]queries.OrderView{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/admin/orders/due-credit", "")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should list products", func(t *testing.T) {
		f := newFixture(t, nil)
		f.catalog.On("Handle", mock.Anything, mock.Anything).Return([]queries.CatalogItem{
			{ID: kernel.NewUUID(), Name: "Steel rebar", Unit: "kg"},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/products", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Steel rebar")
	})
}

func TestInfraRoutes(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)

	f.catalog.On("Handle", mock.Anything, mock.Anything).Return([]queries.CatalogItem{}, nil).Once()
	f.do(http.MethodGet, "/api/v1/products", "")
	rec := f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/v1/products",status="200"} 1`)

	rec = f.do(http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/inquiries")
}

func TestRateLimiter(t *testing.T) {
	f := newFixture(t, httpin.NewVisitorLimiterStore(1, 1))
	f.catalog.On("Handle", mock.Anything, mock.Anything).Return([]queries.CatalogItem{}, nil)

	first := f.do(http.MethodGet, "/api/v1/products", "")
	second := f.do(http.MethodGet, "/api/v1/products", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.RateLimitExceededTotal.WithLabelValues(http.MethodGet, "/api/v1/products")), 0)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
}
