// Package events publishes domain events to RabbitMQ so downstream workers
// (spreadsheet sync, notification senders) can react without being in the
// request path.
package events

import "context"

// Publisher emits domain events. Implementations must be safe for concurrent
// use by multiple request handlers.
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, expenseID int32, categoryName, amount string) error
	PublishBudgetAlert(ctx context.Context, alert *BudgetAlertMessage) error
	Close() error
}

// NoOpPublisher discards all events. Used when no broker is configured and in
// tests.
type NoOpPublisher struct{}

func (NoOpPublisher) PublishExpenseCreated(ctx context.Context, expenseID int32, categoryName, amount string) error {
	return nil
}

func (NoOpPublisher) PublishBudgetAlert(ctx context.Context, alert *BudgetAlertMessage) error {
	return nil
}

func (NoOpPublisher) Close() error { return nil }
