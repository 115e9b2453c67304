package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	outboxRelayJobName = "outbox_relay"
	// maxBatchesPerRun caps one tick when the backlog is large.
	maxBatchesPerRun = 20
)

type relayOutboxHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob moves outbox messages to the broker. A tick keeps relaying
// full batches until the outbox is drained or a publish fails.
type OutboxRelayJob struct {
	handler   relayOutboxHandler
	batchSize int
	metrics   *metrics.Metrics
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxRelayJob(
	handler relayOutboxHandler,
	batchSize int,
	m *metrics.Metrics,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		metrics:   m,
		schedule:  schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Run relays until a batch comes back short and returns the messages sent.
func (j *OutboxRelayJob) Run(ctx context.Context) (int, error) {
	started := time.Now()
	total, err := j.drain(ctx)
	j.metrics.ObserveJob(outboxRelayJobName, time.Since(started).Seconds(), err)
	j.metrics.OutboxPublishedTotal.Add(float64(total))

	if err != nil {
		j.metrics.OutboxFailuresTotal.Inc()
		j.logger.ErrorContext(ctx, "Outbox relay stopped", "sent", total, "error", err)
		return total, err
	}
	if total > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "sent", total)
	}
	return total, nil
}

func (j *OutboxRelayJob) drain(ctx context.Context) (int, error) {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return 0, err
	}

	total := 0
	for range maxBatchesPerRun {
		sent, err := j.handler.Handle(ctx, cmd)
		total += sent
		if err != nil {
			return total, err
		}
		if sent < j.batchSize {
			break
		}
	}
	return total, nil
}

func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
