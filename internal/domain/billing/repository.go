package billing

import (
	"context"
	"time"
)

// SubscriptionRepository reads subscription records. Writes happen in the
// external billing plumbing; this core never mutates subscriptions.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
}

// UsageEventRepository persists append-only usage events.
type UsageEventRepository interface {
	// Create inserts one usage event. Events are immutable after insert.
	Create(ctx context.Context, event *UsageEvent) error

	// CountInWindow counts events for the organization and metric recorded
	// at or after periodStart.
	CountInWindow(ctx context.Context, orgSID string, metric Metric, periodStart time.Time) (int64, error)
}
