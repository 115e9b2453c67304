package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const dueCreditJobName = "due_credit_reminder"

type dueCreditQueryHandler interface {
	Handle(ctx context.Context, query queries.GetDueCreditOrdersQuery) ([]queries.OrderView, error)
}

// DueCreditReminderJob scans for unpaid credit orders due today or earlier and
// raises one alert per order. It only reads.
type DueCreditReminderJob struct {
	handler  dueCreditQueryHandler
	clock    order.Clock
	metrics  *metrics.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDueCreditReminderJob(
	handler dueCreditQueryHandler,
	clock order.Clock,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *DueCreditReminderJob {
	return &DueCreditReminderJob{
		handler:  handler,
		clock:    clock,
		metrics:  m,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		logger:   logger.With("component", "due_credit_reminder_job"),
	}
}

func (j *DueCreditReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due credit reminder job started", "schedule", j.schedule)
	return nil
}

// Run performs one scan and returns the number of due orders found.
func (j *DueCreditReminderJob) Run(ctx context.Context) (int, error) {
	started := time.Now()
	due, err := j.scan(ctx)
	j.metrics.ObserveJob(dueCreditJobName, time.Since(started).Seconds(), err)
	if err != nil {
		j.logger.ErrorContext(ctx, "Due credit scan failed", "error", err)
		return 0, err
	}
	return due, nil
}

func (j *DueCreditReminderJob) scan(ctx context.Context) (int, error) {
	today := j.clock.Now().UTC()
	query, err := queries.NewGetDueCreditOrdersQuery(today)
	if err != nil {
		return 0, err
	}

	views, err := j.handler.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	for _, v := range views {
		var dueDate string
		if v.CreditDueDate != nil {
			dueDate = v.CreditDueDate.Format(time.DateOnly)
		}
		j.logger.WarnContext(ctx, "Credit payment due",
			"order_id", v.ID.String(),
			"client_id", v.ClientRef.String(),
			"due_date", dueDate,
			"amount", v.TotalOrderValue.StringFixed(2),
			"status", v.Status.String(),
		)
	}

	j.metrics.DueCreditOrders.Set(float64(len(views)))
	j.logger.InfoContext(ctx, "Due credit scan finished", "as_of", today.Format(time.DateOnly), "due", len(views))
	return len(views), nil
}

func (j *DueCreditReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Due credit reminder job stopped")
}
