package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) FindDueCredit(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// newMockDB opens gorm on top of sqlmock with the postgres dialect, so '?'
// placeholders are rebound to $n as in production.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func restore(t *testing.T, mutate func(s *order.Snapshot)) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), 4)
	require.NoError(t, err)
	s := order.Snapshot{
		ID:             kernel.NewUUID(),
		ClientRef:      kernel.NewUUID(),
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Items:          []order.Item{item},
		Status:         order.NewInquiry,
		PaymentType:    order.PaymentTypeNotSet,
		PaymentStatus:  order.PaymentPending,
		DeliveryStatus: order.DeliveryPending,
		Version:        1,
	}
	if mutate != nil {
		mutate(&s)
	}
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}
