package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/logging"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	shutdownPeriod         = 15 * time.Second
	systemMetricsInterval  = 15 * time.Second
	limiterCleanupInterval = time.Minute
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, syncLogger, err := logging.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = syncLogger() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.ErrorContext(ctx, "Service stopped with error", "error", err)
		_ = syncLogger()
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	if err := migrate(ctx, configs.DSN(), logger); err != nil {
		return err
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	var publisher ports.EventPublisher
	if configs.KafkaEnabled {
		producer, producerErr := kafka.NewSyncProducer(configs.KafkaBrokers(), kafka.NewSaramaConfig("ordering"))
		if producerErr != nil {
			return producerErr
		}
		kafkaPublisher := kafka.NewPublisher(producer, map[string]string{
			orderrepo.EventTypeStatusChanged: configs.KafkaOrderChangedTopic,
		}, kafka.DefaultRetryConfig())
		defer func() {
			if closeErr := kafkaPublisher.Close(); closeErr != nil {
				logger.Error("Failed to close kafka producer", "error", closeErr)
			}
		}()
		publisher = kafkaPublisher
	} else {
		logger.WarnContext(ctx, "Kafka disabled, outbox messages will not be relayed")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, clock.System{}, publisher, m, logger)

	limiterStore := httpin.NewVisitorLimiterStore(configs.RateLimitRPS, 0)
	e, err := httpin.NewRouter(app.CreateHTTPServer(), m, httpin.RouterConfig{
		RateLimitRPS: configs.RateLimitRPS,
		LimiterStore: limiterStore,
	}, logger)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.InfoContext(gctx, "HTTP server starting", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", startErr)
		}
		return nil
	})

	g.Go(func() error {
		m.RunSystemCollector(gctx, systemMetricsInterval)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiterStore.Cleanup()
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	sqlDB, err := migrations.Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	applied, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Migrations applied", "count", applied)
	return nil
}
