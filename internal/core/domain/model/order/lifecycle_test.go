package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/errs"

	"github.com/AlekSi/pointer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func newLifecycle() order.Lifecycle {
	return order.NewLifecycle(clock.Fixed{At: testNow})
}

func lastAudit(t *testing.T, o *order.Order) order.AuditEntry {
	t.Helper()
	logs := o.AuditLogs()
	require.NotEmpty(t, logs)
	return logs[len(logs)-1]
}

func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	return restoreOrder(t, func(s *order.Snapshot) {
		s.Status = status
	})
}

func TestLifecycle_SubmitInquiry(t *testing.T) {
	lc := newLifecycle()
	id := kernel.NewUUID()

	o, err := lc.SubmitInquiry(id, kernel.NewUUID(), []order.Item{createItem(t, 100)})

	require.NoError(t, err)
	assert.Equal(t, order.NewInquiry, o.Status())
	assert.True(t, o.CreatedAt().Equal(testNow))
	entry := lastAudit(t, o)
	assert.Equal(t, order.ActionCreated, entry.Action())
	assert.Equal(t, order.ActorClient, entry.Actor())
	assert.True(t, entry.Timestamp().Equal(testNow))
}

func TestLifecycle_Transition(t *testing.T) {
	lc := newLifecycle()

	t.Run("should follow every allowed edge", func(t *testing.T) {
		for _, from := range order.Statuses() {
			for _, to := range from.AllowedTransitions() {
				if to == order.Closed {
					continue
				}
				o := orderIn(t, from)

				err := lc.Transition(o, to, order.ActorAdmin, "")

				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, o.Status())
			}
		}
	})

	t.Run("should reject every missing edge without changing the order", func(t *testing.T) {
		for _, from := range order.Statuses() {
			for _, to := range order.Statuses() {
				if from.CanTransitionTo(to) {
					continue
				}
				o := orderIn(t, from)

				err := lc.Transition(o, to, order.ActorAdmin, "note")

				require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", from, to)
				assert.Equal(t, from, o.Status())
				assert.Empty(t, o.AuditLogs())
				assert.Empty(t, o.PendingEvents())
			}
		}
	})

	t.Run("should audit and raise event", func(t *testing.T) {
		o := orderIn(t, order.WaitingClientApproval)

		require.NoError(t, lc.Transition(o, order.OrderConfirmed, order.ActorClient, " Client approved "))

		entry := lastAudit(t, o)
		assert.Equal(t, order.ActionStatusChange, entry.Action())
		assert.Equal(t, order.ActorClient, entry.Actor())
		assert.Equal(t,
			"Changed status from WAITING_CLIENT_APPROVAL to ORDER_CONFIRMED. Client approved",
			entry.Detail())

		events := o.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.WaitingClientApproval, events[0].From)
		assert.Equal(t, order.OrderConfirmed, events[0].To)
		assert.True(t, events[0].OrderID.IsEqual(o.ID()))
		assert.True(t, events[0].At.Equal(testNow))
	})

	t.Run("should reject invalid actor", func(t *testing.T) {
		o := orderIn(t, order.NewInquiry)

		err := lc.Transition(o, order.PendingPricing, order.Actor("ROBOT"), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.NewInquiry, o.Status())
	})
}

func TestLifecycle_TransitionToClosed(t *testing.T) {
	lc := newLifecycle()

	tests := []struct {
		name     string
		payment  order.PaymentStatus
		delivery order.DeliveryStatus
		wantErr  bool
	}{
		{"paid and confirmed", order.PaymentPaid, order.DeliveryConfirmed, false},
		{"pending and confirmed", order.PaymentPending, order.DeliveryConfirmed, true},
		{"paid and delivered", order.PaymentPaid, order.DeliveryDelivered, true},
		{"pending and pending", order.PaymentPending, order.DeliveryPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := restoreOrder(t, func(s *order.Snapshot) {
				s.Status = order.Delivered
				s.PaymentStatus = tt.payment
				s.DeliveryStatus = tt.delivery
			})

			err := lc.Transition(o, order.Closed, order.ActorAdmin, "")

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrPreconditionFailed)
				assert.Equal(t, order.Delivered, o.Status())
				assert.Empty(t, o.AuditLogs())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.Closed, o.Status())
		})
	}
}

func TestLifecycle_TerminalStatesAcceptNothing(t *testing.T) {
	lc := newLifecycle()

	for _, terminal := range []order.Status{order.Closed, order.Cancelled} {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = terminal
			s.PaymentStatus = order.PaymentPaid
			s.DeliveryStatus = order.DeliveryConfirmed
		})

		for _, to := range order.Statuses() {
			assert.ErrorIs(t, lc.Transition(o, to, order.ActorAdmin, ""), errs.ErrInvalidTransition)
		}
		assert.ErrorIs(t, lc.ModifyItems(o, []order.Item{createItem(t, 1)}, order.ActorClient), errs.ErrInvalidTransition)
		assert.ErrorIs(t, lc.RecordPayment(o, order.PaymentPaid), errs.ErrInvalidTransition)
		assert.ErrorIs(t, lc.RecordPayment(o, order.PaymentPending), errs.ErrPreconditionFailed)
		assert.ErrorIs(t,
			lc.SetPaymentTerms(o, order.PaymentTypeCash, nil, order.ActorAdmin),
			errs.ErrPreconditionFailed)
		assert.Equal(t, terminal, o.Status())
		assert.Empty(t, o.AuditLogs())
	}
}

func TestLifecycle_SetPricing(t *testing.T) {
	lc := newLifecycle()

	t.Run("should price steel and await client approval", func(t *testing.T) {
		steel := createItem(t, 100)
		o, err := lc.SubmitInquiry(kernel.NewUUID(), kernel.NewUUID(), []order.Item{steel})
		require.NoError(t, err)
		update, err := order.NewPriceUpdate(steel.ProductRef(), decimal.NewFromInt(65))
		require.NoError(t, err)

		require.NoError(t, lc.SetPricing(o, []order.PriceUpdate{update}, order.ActorAdmin))

		assert.Equal(t, order.WaitingClientApproval, o.Status())
		assert.True(t, decimal.NewFromInt(6500).Equal(o.TotalOrderValue()))
		assert.True(t, decimal.NewFromInt(6500).Equal(o.Items()[0].LineTotal()))
		entry := lastAudit(t, o)
		assert.Equal(t, order.ActionStatusChange, entry.Action())
		assert.Equal(t, order.ActorAdmin, entry.Actor())
		assert.Contains(t, entry.Detail(), "Prices updated.")
	})

	t.Run("should move pending pricing to waiting approval", func(t *testing.T) {
		o := orderIn(t, order.PendingPricing)

		require.NoError(t, lc.SetPricing(o, nil, order.ActorAdmin))

		assert.Equal(t, order.WaitingClientApproval, o.Status())
		require.Len(t, o.PendingEvents(), 1)
	})

	t.Run("should audit repricing while waiting approval as a price update", func(t *testing.T) {
		o := orderIn(t, order.WaitingClientApproval)

		require.NoError(t, lc.SetPricing(o, nil, order.ActorAdmin))

		assert.Equal(t, order.WaitingClientApproval, o.Status())
		entry := lastAudit(t, o)
		assert.Equal(t, order.ActionPricesUpdated, entry.Action())
		assert.Contains(t, entry.Detail(), "Prices updated.")
		assert.NotContains(t, entry.Detail(), "Changed status")
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("should reprice confirmed orders without changing status", func(t *testing.T) {
		item := createItem(t, 4)
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.OrderConfirmed
			s.Items = []order.Item{item}
		})
		update, err := order.NewPriceUpdate(item.ProductRef(), decimal.RequireFromString("2.5"))
		require.NoError(t, err)

		require.NoError(t, lc.SetPricing(o, []order.PriceUpdate{update}, order.ActorAdmin))

		assert.Equal(t, order.OrderConfirmed, o.Status())
		assert.True(t, decimal.NewFromInt(10).Equal(o.TotalOrderValue()))
		assert.Equal(t, order.ActionPricesUpdated, lastAudit(t, o).Action())
	})
}

func TestLifecycle_ModifyItems(t *testing.T) {
	lc := newLifecycle()

	t.Run("should reset awaiting payment to pending pricing", func(t *testing.T) {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.AwaitingPayment
			s.Items = []order.Item{createPricedItem(t, 100, "65")}
		})
		replacement := createItem(t, 120)

		require.NoError(t, lc.ModifyItems(o, []order.Item{replacement}, order.ActorClient))

		assert.Equal(t, order.PendingPricing, o.Status())
		assert.True(t, o.TotalOrderValue().IsZero())
		assert.Equal(t, 120, o.Items()[0].Quantity())

		logs := o.AuditLogs()
		require.Len(t, logs, 2)
		assert.Equal(t, order.ActionStatusReset, logs[0].Action())
		assert.Equal(t, order.ActorSystem, logs[0].Actor())
		assert.Equal(t, order.ActionItemsUpdated, logs[1].Action())
		assert.Equal(t, order.ActorClient, logs[1].Actor())

		events := o.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.AwaitingPayment, events[0].From)
		assert.Equal(t, order.PendingPricing, events[0].To)
	})

	t.Run("should keep new inquiry status", func(t *testing.T) {
		o := orderIn(t, order.NewInquiry)

		require.NoError(t, lc.ModifyItems(o, []order.Item{createItem(t, 3)}, order.ActorClient))

		assert.Equal(t, order.NewInquiry, o.Status())
		logs := o.AuditLogs()
		require.Len(t, logs, 1)
		assert.Equal(t, order.ActionItemsUpdated, logs[0].Action())
	})

	t.Run("should reset in transit orders too", func(t *testing.T) {
		o := orderIn(t, order.InTransit)

		require.NoError(t, lc.ModifyItems(o, []order.Item{createItem(t, 3)}, order.ActorClient))

		assert.Equal(t, order.PendingPricing, o.Status())
	})

	t.Run("should reject empty list without changing the order", func(t *testing.T) {
		o := orderIn(t, order.OrderConfirmed)

		err := lc.ModifyItems(o, nil, order.ActorClient)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.OrderConfirmed, o.Status())
		assert.Len(t, o.Items(), 1)
		assert.Empty(t, o.AuditLogs())
	})
}

func TestLifecycle_RecordPayment(t *testing.T) {
	lc := newLifecycle()

	t.Run("should clear awaiting payment", func(t *testing.T) {
		o := orderIn(t, order.AwaitingPayment)

		require.NoError(t, lc.RecordPayment(o, order.PaymentPaid))

		assert.Equal(t, order.PaymentCleared, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		entry := lastAudit(t, o)
		assert.Equal(t, order.ActionStatusChange, entry.Action())
		assert.Equal(t, order.ActorAdmin, entry.Actor())
		assert.Contains(t, entry.Detail(), "Payment marked as PAID")
	})

	t.Run("should clear confirmed order through awaiting payment", func(t *testing.T) {
		o := orderIn(t, order.OrderConfirmed)

		require.NoError(t, lc.RecordPayment(o, order.PaymentPaid))

		assert.Equal(t, order.PaymentCleared, o.Status())
		logs := o.AuditLogs()
		require.Len(t, logs, 2)
		assert.Contains(t, logs[0].Detail(), "from ORDER_CONFIRMED to AWAITING_PAYMENT")
		assert.Contains(t, logs[1].Detail(), "from AWAITING_PAYMENT to PAYMENT_CLEARED")
		assert.Len(t, o.PendingEvents(), 2)
	})

	t.Run("should reject paid while waiting client approval", func(t *testing.T) {
		o := orderIn(t, order.WaitingClientApproval)

		err := lc.RecordPayment(o, order.PaymentPaid)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.WaitingClientApproval, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Empty(t, o.AuditLogs())
	})

	t.Run("should reject paid when delivered and leave payment pending", func(t *testing.T) {
		o := orderIn(t, order.Delivered)

		err := lc.RecordPayment(o, order.PaymentPaid)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Empty(t, o.AuditLogs())
	})

	t.Run("should record pending without status change", func(t *testing.T) {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.InTransit
			s.PaymentStatus = order.PaymentPaid
		})

		require.NoError(t, lc.RecordPayment(o, order.PaymentPending))

		assert.Equal(t, order.InTransit, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.ActionPaymentUpdated, lastAudit(t, o).Action())
	})

	t.Run("should refuse reopening payment of a cleared order", func(t *testing.T) {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.PaymentCleared
			s.PaymentStatus = order.PaymentPaid
		})

		err := lc.RecordPayment(o, order.PaymentPending)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, order.PaymentCleared, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Empty(t, o.AuditLogs())
	})

	t.Run("should reject unknown payment status", func(t *testing.T) {
		o := orderIn(t, order.AwaitingPayment)

		require.ErrorIs(t, lc.RecordPayment(o, order.PaymentStatus("REFUNDED")), errs.ErrValueIsInvalid)
	})
}

func TestLifecycle_ShipOnCreditThenSettleAndClose(t *testing.T) {
	lc := newLifecycle()
	o := orderIn(t, order.OrderConfirmed)

	require.NoError(t, lc.SetPaymentTerms(o, order.PaymentTypeCredit, pointer.To(testNow.AddDate(0, 0, 30)), order.ActorAdmin))
	require.NoError(t, lc.Transition(o, order.InTransit, order.ActorAdmin, ""))
	require.NoError(t, lc.Transition(o, order.Delivered, order.ActorAdmin, ""))
	require.NoError(t, lc.ConfirmDelivery(o, order.ActorClient))

	err := lc.Transition(o, order.Closed, order.ActorAdmin, "")
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	require.ErrorIs(t, lc.RecordPayment(o, order.PaymentPaid), errs.ErrInvalidTransition)

	require.NoError(t, lc.SettleCredit(o, order.ActorAdmin))
	assert.Equal(t, order.Delivered, o.Status())
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	assert.Equal(t, order.ActionPaymentSettled, lastAudit(t, o).Action())

	require.NoError(t, lc.Transition(o, order.Closed, order.ActorAdmin, ""))
	assert.Equal(t, order.Closed, o.Status())
}

func TestLifecycle_SettleCredit(t *testing.T) {
	lc := newLifecycle()

	tests := []struct {
		name   string
		mutate func(s *order.Snapshot)
	}{
		{
			name: "cash order",
			mutate: func(s *order.Snapshot) {
				s.Status = order.Delivered
				s.PaymentType = order.PaymentTypeCash
			},
		},
		{
			name: "already paid",
			mutate: func(s *order.Snapshot) {
				s.Status = order.InTransit
				s.PaymentType = order.PaymentTypeCredit
				s.PaymentStatus = order.PaymentPaid
			},
		},
		{
			name: "not shipped",
			mutate: func(s *order.Snapshot) {
				s.Status = order.OrderConfirmed
				s.PaymentType = order.PaymentTypeCredit
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := restoreOrder(t, tt.mutate)
			before := o.PaymentStatus()

			require.ErrorIs(t, lc.SettleCredit(o, order.ActorAdmin), errs.ErrPreconditionFailed)
			assert.Equal(t, before, o.PaymentStatus())
			assert.Empty(t, o.AuditLogs())
		})
	}
}

func TestLifecycle_ConfirmDelivery(t *testing.T) {
	lc := newLifecycle()
	o := orderIn(t, order.InTransit)

	require.NoError(t, lc.ConfirmDelivery(o, order.ActorClient))
	require.NoError(t, lc.ConfirmDelivery(o, order.ActorClient))

	assert.Equal(t, order.DeliveryConfirmed, o.DeliveryStatus())
	assert.Equal(t, order.InTransit, o.Status())
	logs := o.AuditLogs()
	require.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Equal(t, order.ActionDeliveryConfirmed, entry.Action())
	}
}

func TestLifecycle_SetPaymentTerms(t *testing.T) {
	lc := newLifecycle()

	t.Run("should store credit due date by day", func(t *testing.T) {
		o := orderIn(t, order.OrderConfirmed)
		due := time.Date(2026, 5, 1, 17, 45, 0, 0, time.UTC)

		require.NoError(t, lc.SetPaymentTerms(o, order.PaymentTypeCredit, &due, order.ActorAdmin))

		assert.Equal(t, order.PaymentTypeCredit, o.PaymentType())
		require.NotNil(t, o.CreditDueDate())
		assert.True(t, o.CreditDueDate().Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, order.ActionUpdated, lastAudit(t, o).Action())
	})

	t.Run("should require due date for credit", func(t *testing.T) {
		o := orderIn(t, order.OrderConfirmed)

		require.ErrorIs(t, lc.SetPaymentTerms(o, order.PaymentTypeCredit, nil, order.ActorAdmin), errs.ErrValueIsRequired)
		assert.Equal(t, order.PaymentTypeNotSet, o.PaymentType())
	})

	t.Run("should reject due date for cash", func(t *testing.T) {
		o := orderIn(t, order.OrderConfirmed)

		err := lc.SetPaymentTerms(o, order.PaymentTypeCash, pointer.To(testNow), order.ActorAdmin)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should clear due date when switching to cash", func(t *testing.T) {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.OrderConfirmed
			s.PaymentType = order.PaymentTypeCredit
			s.CreditDueDate = pointer.To(testNow)
		})

		require.NoError(t, lc.SetPaymentTerms(o, order.PaymentTypeCash, nil, order.ActorAdmin))

		assert.Equal(t, order.PaymentTypeCash, o.PaymentType())
		assert.Nil(t, o.CreditDueDate())
	})
}

func TestLifecycle_SubmitFeedback(t *testing.T) {
	lc := newLifecycle()
	feedback, err := order.NewFeedback(5, "  on time  ")
	require.NoError(t, err)

	t.Run("should require confirmed delivery", func(t *testing.T) {
		o := orderIn(t, order.Delivered)

		require.ErrorIs(t, lc.SubmitFeedback(o, feedback, order.ActorClient), errs.ErrPreconditionFailed)
		assert.Nil(t, o.Feedback())
	})

	t.Run("should store feedback", func(t *testing.T) {
		o := restoreOrder(t, func(s *order.Snapshot) {
			s.Status = order.Delivered
			s.DeliveryStatus = order.DeliveryConfirmed
		})

		require.NoError(t, lc.SubmitFeedback(o, feedback, order.ActorClient))

		require.NotNil(t, o.Feedback())
		assert.Equal(t, 5, o.Feedback().Rating())
		assert.Equal(t, "on time", o.Feedback().Comment())
		assert.Equal(t, order.ActionFeedbackSubmitted, lastAudit(t, o).Action())
	})

	t.Run("should reject rating out of range", func(t *testing.T) {
		_, err := order.NewFeedback(6, "")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
