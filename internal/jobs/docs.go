// Package jobs runs the scheduled background work of the ordering service on
// github.com/robfig/cron/v3 (six-field specs, seconds first).
//
// # Available Jobs
//
//  1. DueCreditReminderJob - daily scan for unpaid credit orders due today or
//     earlier; logs one warning per order and sets the due_credit_orders gauge.
//     It never changes an order.
//  2. OutboxRelayJob - publishes order status events from the outbox to Kafka,
//     acknowledging each batch in the same transaction that locked it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dueCreditJob, relayJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs log failures and record them in metrics; the next tick retries. The
// relay skips a tick while the previous one is still running.
package jobs
