package billing

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"beacon/internal/domain/billing"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

// Gate enforces subscription, feature, and quota entitlements in front of
// metered operations. The usage check is a soft limit: check-then-record is
// not atomic, so concurrent requests near the boundary may briefly exceed
// the quota by a few events.
type Gate struct {
	subscriptionRepo billing.SubscriptionRepository
	usageRepo        billing.UsageEventRepository
	periodDays       int
	now              func() time.Time
	logger           logger.Interface
}

func NewGate(
	subscriptionRepo billing.SubscriptionRepository,
	usageRepo billing.UsageEventRepository,
	periodDays int,
	now func() time.Time,
	logger logger.Interface,
) *Gate {
	return &Gate{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		periodDays:       periodDays,
		now:              now,
		logger:           logger,
	}
}

// EnsureActiveSubscription loads the principal's subscription and resolves
// its plan limits. Missing or non-active subscriptions are rejected; a tier
// absent from the plan table requires an upgrade.
func (g *Gate) EnsureActiveSubscription(ctx context.Context, userID string) (*billing.Subscription, billing.PlanLimits, error) {
	sub, err := g.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, billing.ErrSubscriptionNotFound) {
			return nil, billing.PlanLimits{}, errors.NewSubscriptionRequiredError()
		}
		g.logger.Errorw("failed to load subscription", "error", err, "user_id", userID)
		return nil, billing.PlanLimits{}, fmt.Errorf("failed to load subscription: %w", err)
	}

	if !sub.IsActive() {
		return nil, billing.PlanLimits{}, errors.NewSubscriptionRequiredError(
			fmt.Sprintf("subscription status is %s", sub.Status()),
		)
	}

	limits, ok := billing.LimitsForTier(sub.PlanTier())
	if !ok {
		g.logger.Warnw("subscription carries unknown plan tier",
			"user_id", userID,
			"plan_tier", sub.PlanTier(),
		)
		return nil, billing.PlanLimits{}, errors.NewPlanUpgradeRequiredError()
	}

	return sub, limits, nil
}

// AssertPlanAllowsFeature rejects features the plan does not include.
func (g *Gate) AssertPlanAllowsFeature(limits billing.PlanLimits, feature billing.Feature) error {
	if !limits.Allows(feature) {
		return errors.NewPlanUpgradeRequiredError(
			fmt.Sprintf("the %s feature requires a higher plan", feature),
		)
	}
	return nil
}

// AssertUsageWithinLimit checks the metric's consumption inside the current
// metering window. A nil limit means unlimited and always passes.
func (g *Gate) AssertUsageWithinLimit(ctx context.Context, orgSID string, sub *billing.Subscription, limits billing.PlanLimits, metric billing.Metric) error {
	limit := limits.LimitFor(metric)
	if limit == nil {
		return nil
	}

	periodStart := sub.PeriodStart(g.now(), g.periodDays)
	count, err := g.usageRepo.CountInWindow(ctx, orgSID, metric, periodStart)
	if err != nil {
		g.logger.Errorw("failed to count usage", "error", err, "org_sid", orgSID, "metric", metric)
		return fmt.Errorf("failed to count usage: %w", err)
	}

	if count >= int64(*limit) {
		return errors.NewUsageLimitReachedError(string(metric), *limit)
	}

	return nil
}

// RecordUsageEvent appends one consumption event for the organization.
func (g *Gate) RecordUsageEvent(ctx context.Context, orgSID string, metric billing.Metric) error {
	event, err := billing.NewUsageEvent(orgSID, metric, g.now())
	if err != nil {
		return err
	}

	if err := g.usageRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to record usage event: %w", err)
	}

	return nil
}
