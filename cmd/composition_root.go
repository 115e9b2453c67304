package cmd

import (
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	lifecycle  order.Lifecycle
	clock      order.Clock
	publisher  ports.EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires adapters to use cases. publisher may be nil when
// Kafka is disabled; the outbox then keeps accumulating and no relay runs.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	clock order.Clock,
	publisher ports.EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		lifecycle:  order.NewLifecycle(clock),
		clock:      clock,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogOrderUoWFactory() commands.CatalogOrderUoWFactory {
	return FuncCatalogOrderUoWFactory(func() commands.CatalogOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitInquiryCommandHandler() commands.SubmitInquiryCommandHandler {
	return commands.NewSubmitInquiryCommandHandler(c.catalogOrderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateModifyItemsCommandHandler() commands.ModifyItemsCommandHandler {
	return commands.NewModifyItemsCommandHandler(c.catalogOrderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateSetPricingCommandHandler() commands.SetPricingCommandHandler {
	return commands.NewSetPricingCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateSetPaymentTermsCommandHandler() commands.SetPaymentTermsCommandHandler {
	return commands.NewSetPaymentTermsCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateSettleCreditCommandHandler() commands.SettleCreditCommandHandler {
	return commands.NewSettleCreditCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	return commands.NewSubmitFeedbackCommandHandler(c.orderUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.outboxUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetDueCreditOrdersQueryHandler() queries.GetDueCreditOrdersQueryHandler {
	return queries.NewGetDueCreditOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCatalogItemsQueryHandler() queries.ListCatalogItemsQueryHandler {
	return queries.NewListCatalogItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		SubmitInquiry:    c.CreateSubmitInquiryCommandHandler(),
		ModifyItems:      c.CreateModifyItemsCommandHandler(),
		TransitionOrder:  c.CreateTransitionOrderCommandHandler(),
		SetPricing:       c.CreateSetPricingCommandHandler(),
		RecordPayment:    c.CreateRecordPaymentCommandHandler(),
		SetPaymentTerms:  c.CreateSetPaymentTermsCommandHandler(),
		SettleCredit:     c.CreateSettleCreditCommandHandler(),
		ConfirmDelivery:  c.CreateConfirmDeliveryCommandHandler(),
		SubmitFeedback:   c.CreateSubmitFeedbackCommandHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
		DueCreditOrders:  c.CreateGetDueCreditOrdersQueryHandler(),
		ListCatalogItems: c.CreateListCatalogItemsQueryHandler(),
	}, c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	dueCredit := jobs.NewDueCreditReminderJob(
		c.CreateGetDueCreditOrdersQueryHandler(),
		c.clock,
		c.metrics,
		c.cfg.DueCreditSchedule,
		c.logger,
	)

	var relay *jobs.OutboxRelayJob
	if c.publisher != nil {
		relay = jobs.NewOutboxRelayJob(
			c.CreateRelayOutboxCommandHandler(),
			c.cfg.OutboxBatchSize,
			c.metrics,
			c.cfg.OutboxRelaySchedule,
			c.logger,
		)
	}

	return jobs.NewJobManager(dueCredit, relay)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogOrderUoWFactory func() commands.CatalogOrderUoW

func (f FuncCatalogOrderUoWFactory) Create() commands.CatalogOrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
