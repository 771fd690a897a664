package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/domain/billing"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

// gateTestNow is a fixed instant so window math is deterministic.
func gateTestNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

type fakeSubscriptionRepo struct {
	subs map[string]*billing.Subscription
}

func (f *fakeSubscriptionRepo) GetByUserID(_ context.Context, userID string) (*billing.Subscription, error) {
	sub, ok := f.subs[userID]
	if !ok {
		return nil, billing.ErrSubscriptionNotFound
	}
	return sub, nil
}

type fakeUsageRepo struct {
	mu     sync.Mutex
	events []*billing.UsageEvent
}

func (f *fakeUsageRepo) Create(_ context.Context, event *billing.UsageEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeUsageRepo) CountInWindow(_ context.Context, orgSID string, metric billing.Metric, periodStart time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, e := range f.events {
		if e.OrgSID() == orgSID && e.Metric() == metric && !e.RecordedAt().Before(periodStart) {
			count++
		}
	}
	return count, nil
}

func makeSubscription(t *testing.T, tier billing.PlanTier, status billing.SubscriptionStatus) *billing.Subscription {
	t.Helper()
	sub, err := billing.NewSubscription("auth0|alice", tier, status, gateTestNow().Add(10*24*time.Hour))
	require.NoError(t, err)
	return sub
}

func newTestGate(subs *fakeSubscriptionRepo, usage *fakeUsageRepo, now func() time.Time) *Gate {
	return NewGate(subs, usage, 30, now, logger.NewLogger())
}

func TestGate_EnsureActiveSubscription(t *testing.T) {
	tests := []struct {
		name     string
		sub      *billing.Subscription
		wantType errors.ErrorType
	}{
		{"active passes", makeSubscription(t, billing.TierStarter, billing.StatusActive), ""},
		{"trialing passes", makeSubscription(t, billing.TierFree, billing.StatusTrialing), ""},
		{"past_due rejected", makeSubscription(t, billing.TierPro, billing.StatusPastDue), errors.ErrorTypeSubscriptionRequired},
		{"canceled rejected", makeSubscription(t, billing.TierPro, billing.StatusCanceled), errors.ErrorTypeSubscriptionRequired},
		{"missing rejected", nil, errors.ErrorTypeSubscriptionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSubscriptionRepo{subs: map[string]*billing.Subscription{}}
			if tt.sub != nil {
				repo.subs["auth0|alice"] = tt.sub
			}
			gate := newTestGate(repo, &fakeUsageRepo{}, gateTestNow)

			_, _, err := gate.EnsureActiveSubscription(context.Background(), "auth0|alice")
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
		})
	}
}

func TestGate_AssertPlanAllowsFeature(t *testing.T) {
	gate := newTestGate(&fakeSubscriptionRepo{}, &fakeUsageRepo{}, gateTestNow)

	freeLimits, ok := billing.LimitsForTier(billing.TierFree)
	require.True(t, ok)

	assert.NoError(t, gate.AssertPlanAllowsFeature(freeLimits, billing.FeatureChat))

	err := gate.AssertPlanAllowsFeature(freeLimits, billing.FeatureMessaging)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypePlanUpgradeRequired, appErr.Type)
}

func TestGate_AssertUsageWithinLimit_UnlimitedNeverRaises(t *testing.T) {
	usage := &fakeUsageRepo{}
	gate := newTestGate(&fakeSubscriptionRepo{}, usage, gateTestNow)
	sub := makeSubscription(t, billing.TierAgency, billing.StatusActive)
	limits, ok := billing.LimitsForTier(billing.TierAgency)
	require.True(t, ok)

	for i := 0; i < 1000; i++ {
		require.NoError(t, gate.RecordUsageEvent(context.Background(), "org_a", billing.MetricChat))
	}

	err := gate.AssertUsageWithinLimit(context.Background(), "org_a", sub, limits, billing.MetricChat)
	assert.NoError(t, err)
}

func TestGate_AssertUsageWithinLimit_BlocksAtLimit(t *testing.T) {
	usage := &fakeUsageRepo{}
	gate := newTestGate(&fakeSubscriptionRepo{}, usage, gateTestNow)
	sub := makeSubscription(t, billing.TierFree, billing.StatusActive)
	limits, ok := billing.LimitsForTier(billing.TierFree)
	require.True(t, ok)
	ctx := context.Background()

	// Free chat limit is 5: the first five requests pass, the sixth is blocked.
	for i := 0; i < 5; i++ {
		require.NoError(t, gate.AssertUsageWithinLimit(ctx, "org_a", sub, limits, billing.MetricChat))
		require.NoError(t, gate.RecordUsageEvent(ctx, "org_a", billing.MetricChat))
	}

	err := gate.AssertUsageWithinLimit(ctx, "org_a", sub, limits, billing.MetricChat)
	require.Error(t, err)
	assert.True(t, errors.IsUsageLimitError(err))

	// The other metric still has headroom.
	assert.NoError(t, gate.AssertUsageWithinLimit(ctx, "org_a", sub, limits, billing.MetricSearch))
}

func TestGate_AssertUsageWithinLimit_WindowAdvanceResets(t *testing.T) {
	usage := &fakeUsageRepo{}
	currentNow := gateTestNow()
	clock := func() time.Time { return currentNow }

	// Subscription with an elapsed billing anchor: the window rolls with now.
	sub, err := billing.NewSubscription("auth0|alice", billing.TierFree, billing.StatusActive,
		gateTestNow().Add(-24*time.Hour))
	require.NoError(t, err)
	limits, ok := billing.LimitsForTier(billing.TierFree)
	require.True(t, ok)

	gate := newTestGate(&fakeSubscriptionRepo{}, usage, clock)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, gate.RecordUsageEvent(ctx, "org_a", billing.MetricChat))
	}
	require.Error(t, gate.AssertUsageWithinLimit(ctx, "org_a", sub, limits, billing.MetricChat))

	// 31 days later the old events fall out of the rolling window.
	currentNow = currentNow.Add(31 * 24 * time.Hour)
	assert.NoError(t, gate.AssertUsageWithinLimit(ctx, "org_a", sub, limits, billing.MetricChat))
}

func TestGate_EnsureActiveSubscription_UnknownTier(t *testing.T) {
	sub, err := billing.NewSubscription("auth0|alice", billing.PlanTier("legacy"), billing.StatusActive, gateTestNow())
	require.Error(t, err)
	assert.Nil(t, sub)
}

func TestGate_RecordUsageEvent(t *testing.T) {
	usage := &fakeUsageRepo{}
	gate := newTestGate(&fakeSubscriptionRepo{}, usage, gateTestNow)

	require.NoError(t, gate.RecordUsageEvent(context.Background(), "org_a", billing.MetricSearch))
	require.Len(t, usage.events, 1)
	assert.Equal(t, billing.MetricSearch, usage.events[0].Metric())
	assert.Equal(t, gateTestNow(), usage.events[0].RecordedAt())
	assert.Equal(t, 1, usage.events[0].Quantity())
}
