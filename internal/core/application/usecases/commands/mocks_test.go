package commands_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindDueCredit(ctx context.Context, asOf time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) ClientExists(ctx context.Context, clientRef kernel.UUID) (bool, error) {
	args := m.Called(ctx, clientRef)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) MissingProducts(ctx context.Context, refs []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	args := m.Called(ctx, ids, sentAt)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogOrderUoWFactory struct{ mock.Mock }

func (m *MockCatalogOrderUoWFactory) Create() commands.CatalogOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

var testNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

func newLifecycle() order.Lifecycle {
	return order.NewLifecycle(fixedClock{})
}

// storedOrder builds an order as a repository would return it.
func storedOrder(t *testing.T, status order.Status, items ...order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		item, err := order.NewItem(kernel.NewUUID(), 1)
		require.NoError(t, err)
		items = []order.Item{item}
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:             kernel.NewUUID(),
		ClientRef:      kernel.NewUUID(),
		CreatedAt:      testNow.Add(-time.Hour),
		Items:          items,
		Status:         status,
		PaymentType:    order.PaymentTypeNotSet,
		PaymentStatus:  order.PaymentPending,
		DeliveryStatus: order.DeliveryPending,
		Version:        3,
	})
	require.NoError(t, err)
	return o
}

// expectMutation wires the load-apply-save sequence shared by the order handlers.
func expectMutation(
	ctx context.Context,
	o *order.Order,
	updateErr error,
) (*MockOrderUoWFactory, *MockUoW, *MockOrderRepository) {
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(updateErr).Once()
	if updateErr == nil {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	return factory, uow, repo
}
