// Package pgtest starts a disposable postgres with the service schema for
// integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres in a container and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	d := &Database{Container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return d, err
	}

	sqlDB, err := migrations.Open(dsn)
	if err != nil {
		return d, err
	}
	defer sqlDB.Close()
	if _, err = migrations.Up(ctx, sqlDB); err != nil {
		return d, err
	}

	d.DB, err = gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	return d, err
}

// Truncate empties every table between tests.
func (d *Database) Truncate() error {
	return d.DB.Exec(`TRUNCATE TABLE outbox, order_audit_logs, order_items, orders, catalog_items, clients
		RESTART IDENTITY CASCADE`).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	if err := d.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate postgres container: %w", err)
	}
	return nil
}
