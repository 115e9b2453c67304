package http

import (
	"log/slog"
	"net/http"

	"ordering/internal/adapters/in/http/api"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	RateLimitRPS float64
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer     prometheus.Gatherer
	LimiterStore *VisitorLimiterStore
}

// NewRouter wires middleware and every route onto a fresh echo instance.
func NewRouter(s *Server, m *metrics.Metrics, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.LimiterStore == nil {
		cfg.LimiterStore = NewVisitorLimiterStore(cfg.RateLimitRPS, 0)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.ErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger.With("component", "http")))
	e.Use(MetricsMiddleware(m))
	e.Use(RateLimiter(cfg.LimiterStore, cfg.RateLimitRPS, m, logger))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	v1.GET("/products", s.ListProducts)
	v1.POST("/inquiries", s.SubmitInquiry)
	v1.GET("/clients/:clientId/orders", s.ListClientOrders)
	v1.GET("/orders/:id", s.GetOrder)
	v1.PUT("/orders/:id/items", s.ModifyItems)
	v1.POST("/orders/:id/confirm", s.ConfirmOrder)
	v1.POST("/orders/:id/received", s.ConfirmDelivery)
	v1.POST("/orders/:id/feedback", s.SubmitFeedback)

	admin := v1.Group("/admin")
	admin.GET("/orders", s.ListOrders)
	admin.GET("/inquiries", s.ListInquiries)
	admin.GET("/orders/due-credit", s.ListDueCreditOrders)
	admin.PUT("/orders/:id/pricing", s.SetPricing)
	admin.PUT("/orders/:id/payment", s.RecordPayment)
	admin.PUT("/orders/:id/payment-terms", s.SetPaymentTerms)
	admin.POST("/orders/:id/settle", s.SettleCredit)
	admin.POST("/orders/:id/status", s.TransitionOrder)
	admin.POST("/orders/:id/dispatch", s.DispatchOrder)
	admin.POST("/orders/:id/deliver", s.DeliverOrder)
	admin.POST("/orders/:id/cancel", s.CancelOrder)

	return e, nil
}
